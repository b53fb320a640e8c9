package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"interviewportal/config"
	"interviewportal/models"
	"interviewportal/utils"
	"interviewportal/zoom"
)

// Storage seams for the handlers. database provides the Mongo
// implementations; tests substitute in-memory ones. Lookups that find
// nothing return mongo.ErrNoDocuments.

type UserStore interface {
	CountByEmail(ctx context.Context, email string) (int64, error)
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error)
	FindByEmails(ctx context.Context, emails []string) ([]models.User, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error)
	SetPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

type InterviewStore interface {
	Insert(ctx context.Context, iv *models.Interview) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Interview, error)
	List(ctx context.Context, q *utils.ListQuery) ([]*models.Interview, int64, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Interview, error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

type ResetTokenStore interface {
	Insert(ctx context.Context, t *models.ResetToken) error
	FindValid(ctx context.Context, tokenHash string, createdAfter time.Time) (*models.ResetToken, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

type MailSender interface {
	Send(to, subject, html string) error
}

// App carries every dependency the handlers need. Built once in main and
// passed down; controllers hold no package-level state.
type App struct {
	Users      UserStore
	Interviews InterviewStore
	Tokens     ResetTokenStore
	Mailer     MailSender
	Zoom       *zoom.Client
	Cfg        *config.Config
}

func NewApp(users UserStore, interviews InterviewStore, tokens ResetTokenStore, m MailSender, z *zoom.Client, cfg *config.Config) *App {
	return &App{Users: users, Interviews: interviews, Tokens: tokens, Mailer: m, Zoom: z, Cfg: cfg}
}

func (a *App) serverError(c *gin.Context, err error, op string) {
	log.Printf("%s: %v", op, err)
	msg := "Internal server error"
	if a.Cfg.IsDevelopment() {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"errors":  utils.ValidationErrors(err),
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

// currentUserID reads the id Protect stored on the context.
func currentUserID(c *gin.Context) (bson.ObjectID, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return bson.ObjectID{}, false
	}
	id, err := bson.ObjectIDFromHex(v.(string))
	if err != nil {
		return bson.ObjectID{}, false
	}
	return id, true
}

// notify dispatches a notification off the request path. Outcomes are only
// ever observed in the logs.
func (a *App) notify(to, subject, html string) {
	go func() {
		if err := a.Mailer.Send(to, subject, html); err != nil {
			log.Printf("email notification failed (to=%s): %v", to, err)
		}
	}()
}

// populateInterviewers batch-fetches the referenced users and embeds their
// sanitized refs, preserving the stored order.
func (a *App) populateInterviewers(ctx context.Context, interviews ...*models.Interview) error {
	idSet := map[bson.ObjectID]struct{}{}
	for _, iv := range interviews {
		for _, id := range iv.Interviewers {
			idSet[id] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]bson.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := a.Users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	refs := map[bson.ObjectID]models.UserRef{}
	for _, u := range users {
		refs[u.ID] = u.Ref()
	}

	for _, iv := range interviews {
		iv.InterviewerDetails = make([]models.UserRef, 0, len(iv.Interviewers))
		for _, id := range iv.Interviewers {
			if ref, ok := refs[id]; ok {
				iv.InterviewerDetails = append(iv.InterviewerDetails, ref)
			}
		}
	}
	return nil
}
