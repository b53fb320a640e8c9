package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"interviewportal/models"
	"interviewportal/utils"
)

// Mongo-backed stores behind the controllers' storage interfaces. Lookups
// that find nothing return mongo.ErrNoDocuments.

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{col: db.Users()}
}

func (s *UserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"email": email})
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	_, err := s.col.InsertOne(ctx, u)
	return err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserStore) FindByEmails(ctx context.Context, emails []string) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserStore) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) SetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"passwordHash": passwordHash, "updatedAt": time.Now().UTC()},
	})
	return err
}

type InterviewStore struct {
	col *mongo.Collection
}

func NewInterviewStore(db *DB) *InterviewStore {
	return &InterviewStore{col: db.Interviews()}
}

func (s *InterviewStore) Insert(ctx context.Context, iv *models.Interview) error {
	_, err := s.col.InsertOne(ctx, iv)
	return err
}

func (s *InterviewStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.Interview, error) {
	var iv models.Interview
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&iv); err != nil {
		return nil, err
	}
	return &iv, nil
}

func (s *InterviewStore) List(ctx context.Context, q *utils.ListQuery) ([]*models.Interview, int64, error) {
	total, err := s.col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit)).
		SetSort(q.Sort)
	if q.Projection != nil {
		findOpts.SetProjection(q.Projection)
	}

	cursor, err := s.col.Find(ctx, q.Filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	interviews := make([]*models.Interview, 0)
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, 0, err
	}
	return interviews, total, nil
}

func (s *InterviewStore) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Interview, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var iv models.Interview
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&iv)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (s *InterviewStore) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type ResetTokenStore struct {
	col *mongo.Collection
}

func NewResetTokenStore(db *DB) *ResetTokenStore {
	return &ResetTokenStore{col: db.ResetTokens()}
}

func (s *ResetTokenStore) Insert(ctx context.Context, t *models.ResetToken) error {
	_, err := s.col.InsertOne(ctx, t)
	return err
}

func (s *ResetTokenStore) FindValid(ctx context.Context, tokenHash string, createdAfter time.Time) (*models.ResetToken, error) {
	var t models.ResetToken
	err := s.col.FindOne(ctx, bson.M{
		"tokenHash": tokenHash,
		"createdAt": bson.M{"$gt": createdAfter},
	}).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ResetTokenStore) Delete(ctx context.Context, id bson.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
