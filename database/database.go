package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"interviewportal/models"
)

const (
	UsersCollection       = "users"
	InterviewsCollection  = "interviews"
	ResetTokensCollection = "reset_tokens"
)

// DB wraps the driver client. It is built once in main and handed to every
// component that needs it; nothing in this package holds module-level state.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, databaseName string) (*DB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &DB{client: client, db: client.Database(databaseName)}, nil
}

func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

func (d *DB) Users() *mongo.Collection      { return d.Collection(UsersCollection) }
func (d *DB) Interviews() *mongo.Collection { return d.Collection(InterviewsCollection) }
func (d *DB) ResetTokens() *mongo.Collection {
	return d.Collection(ResetTokensCollection)
}

func (d *DB) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the queries rely on: the unique email
// constraint, the reset-token TTL window, and the interview listing indexes.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	ttl := int32(models.ResetTokenTTL.Seconds())
	_, err = d.ResetTokens().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(ttl),
	})
	if err != nil {
		return fmt.Errorf("reset token ttl index: %w", err)
	}

	_, err = d.Interviews().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "interviewDate", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "candidateEmail", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("interview indexes: %w", err)
	}

	return nil
}
