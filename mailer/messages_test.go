package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"interviewportal/models"
)

func sampleInterview() *models.Interview {
	return &models.Interview{
		CandidateName:  "Ada Lovelace",
		CandidateEmail: "ada@x.com",
		Position:       "Backend Engineer",
		InterviewDate:  time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC),
		Duration:       60,
	}
}

func TestInterviewScheduledCandidate(t *testing.T) {
	subject, html := InterviewScheduledCandidate(sampleInterview())

	assert.Equal(t, "Interview Scheduled - Backend Engineer", subject)
	assert.Contains(t, html, "Hello Ada Lovelace")
	assert.Contains(t, html, "Backend Engineer")
	assert.Contains(t, html, "60 minutes")
}

func TestInterviewScheduledInterviewer(t *testing.T) {
	ref := models.UserRef{ID: bson.NewObjectID(), Name: "Grace", Email: "grace@x.com"}
	subject, html := InterviewScheduledInterviewer(sampleInterview(), ref)

	assert.Equal(t, "Interview Scheduled - Ada Lovelace for Backend Engineer", subject)
	assert.Contains(t, html, "Hello Grace")
	assert.Contains(t, html, "ada@x.com")
}

func TestMeetingDetailsCandidate(t *testing.T) {
	subject, html := MeetingDetailsCandidate(sampleInterview(), "987654321", "pw123456", "https://zoom.example/j/987654321")

	assert.Equal(t, "Zoom Meeting Details - Interview for Backend Engineer", subject)
	assert.Contains(t, html, "987654321")
	assert.Contains(t, html, "pw123456")
	assert.Contains(t, html, `href="https://zoom.example/j/987654321"`)
}

func TestMeetingDetailsInterviewer(t *testing.T) {
	ref := models.UserRef{Name: "Grace", Email: "grace@x.com"}
	subject, html := MeetingDetailsInterviewer(sampleInterview(), ref, "987654321", "pw123456",
		"https://zoom.example/j/987654321", "https://zoom.example/s/987654321")

	assert.Equal(t, "Zoom Meeting Details - Interview with Ada Lovelace", subject)
	assert.Contains(t, html, `href="https://zoom.example/s/987654321"`)
	assert.Contains(t, html, `href="https://zoom.example/j/987654321"`)
}

func TestPasswordReset(t *testing.T) {
	subject, html := PasswordReset("Ada", "https://portal.example/reset-password/abc123")

	assert.Equal(t, "Password Reset Request - Interview Portal", subject)
	assert.Contains(t, html, "Hello Ada")
	assert.Contains(t, html, "https://portal.example/reset-password/abc123")
	assert.Contains(t, html, "expire in 1 hour")
}

func TestPasswordResetConfirmation(t *testing.T) {
	subject, html := PasswordResetConfirmation()

	assert.Equal(t, "Password Updated - Interview Portal", subject)
	assert.Contains(t, html, "Password Updated Successfully")
}
