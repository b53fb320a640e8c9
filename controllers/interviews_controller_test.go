package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"interviewportal/models"
)

func TestCreateInterviewUnresolvedInterviewerEmails(t *testing.T) {
	caller := bson.NewObjectID()
	f := newTestApp()
	f.users.users = append(f.users.users, models.User{
		ID:    bson.NewObjectID(),
		Name:  "Grace",
		Email: "grace@x.com",
		Role:  models.RoleInterviewer,
	})
	r := newTestRouter(f.app, caller.Hex())

	body := `{"candidateName":"Ada","candidateEmail":"ada@x.com","position":"Dev",
		"interviewDate":"2026-09-10T14:00:00Z","duration":60,
		"interviewers":["grace@x.com","missing@x.com","ghost@x.com"]}`
	w := postJSON(r, "/api/interviews", body)

	// A partially resolvable email list fails whole: the misses are named
	// and nothing is written.
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing@x.com, ghost@x.com")
	assert.Contains(t, w.Body.String(), "not found in the system")
	assert.Equal(t, 0, f.interviews.inserted)
}

func TestCreateInterviewResolvesInterviewerEmails(t *testing.T) {
	caller := bson.NewObjectID()
	grace := models.User{
		ID:    bson.NewObjectID(),
		Name:  "Grace",
		Email: "grace@x.com",
		Role:  models.RoleInterviewer,
	}
	f := newTestApp()
	f.users.users = append(f.users.users, grace)
	r := newTestRouter(f.app, caller.Hex())

	body := `{"candidateName":"Ada","candidateEmail":"ada@x.com","position":"Dev",
		"interviewDate":"2026-09-10T14:00:00Z","duration":60,
		"interviewers":["Grace@X.com"]}`
	w := postJSON(r, "/api/interviews", body)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, f.interviews.inserted)
	assert.Contains(t, w.Body.String(), "grace@x.com")
}

func TestSubmitFeedbackRejectsNonInterviewer(t *testing.T) {
	assigned := bson.NewObjectID()
	outsider := bson.NewObjectID()
	iv := models.Interview{
		ID:             bson.NewObjectID(),
		CandidateName:  "Ada",
		CandidateEmail: "ada@x.com",
		Position:       "Dev",
		InterviewDate:  time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Duration:       60,
		Interviewers:   []bson.ObjectID{assigned},
		Status:         models.StatusScheduled,
	}

	f := newTestApp()
	f.interviews.interviews[iv.ID] = iv
	r := newTestRouter(f.app, outsider.Hex())

	w := postJSON(r, "/api/interviews/"+iv.ID.Hex()+"/feedback", `{"rating":4,"comments":"solid"}`)

	// 403 and no write
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, f.interviews.updates)
	assert.Nil(t, f.interviews.interviews[iv.ID].Feedback)
}

func TestSubmitFeedbackByAssignedInterviewer(t *testing.T) {
	assigned := bson.NewObjectID()
	iv := models.Interview{
		ID:             bson.NewObjectID(),
		CandidateName:  "Ada",
		CandidateEmail: "ada@x.com",
		Position:       "Dev",
		InterviewDate:  time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Duration:       60,
		Interviewers:   []bson.ObjectID{assigned},
		Status:         models.StatusScheduled,
	}

	f := newTestApp()
	f.interviews.interviews[iv.ID] = iv
	r := newTestRouter(f.app, assigned.Hex())

	w := postJSON(r, "/api/interviews/"+iv.ID.Hex()+"/feedback", `{"rating":4,"comments":"solid"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, f.interviews.updates, 1)

	fb, ok := f.interviews.updates[0]["feedback"].(models.Feedback)
	require.True(t, ok)
	assert.Equal(t, 4, fb.Rating)
	assert.Equal(t, assigned, fb.SubmittedBy)
}
