package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"interviewportal/dto"
	"interviewportal/mailer"
	"interviewportal/models"
	"interviewportal/utils"
	"interviewportal/zoom"
)

// POST /api/zoom/signature
func (a *App) GenerateSignature() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.GenerateSignatureDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		sig := a.Zoom.GenerateSignature(body.MeetingNumber, *body.Role)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": sig})
	}
}

// POST /api/zoom/create-meeting
//
// Repeated calls for the same interview create a fresh upstream meeting and
// overwrite the stored identifiers.
func (a *App) CreateMeeting() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateMeetingDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(body.InterviewID)
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		iv, err := a.Interviews.FindByID(ctx, id)
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		if err := a.populateInterviewers(ctx, iv); err != nil {
			a.serverError(c, err, "populate interviewers")
			return
		}

		topic := body.Topic
		if topic == "" {
			topic = fmt.Sprintf("Interview with %s for %s", iv.CandidateName, iv.Position)
		}
		startTime := body.StartTime
		if startTime == "" {
			startTime = iv.InterviewDate.UTC().Format(time.RFC3339)
		}
		duration := body.Duration
		if duration == 0 {
			duration = iv.Duration
		}
		password := body.Password
		if password == "" {
			password = utils.RandomMeetingPassword()
		}

		meeting, err := a.Zoom.CreateMeeting(ctx, &zoom.MeetingRequest{
			Topic:     topic,
			Type:      2, // scheduled meeting
			StartTime: startTime,
			Duration:  duration,
			Timezone:  "UTC",
			Password:  password,
			Settings:  zoom.DefaultSettings(),
		})
		if err != nil {
			a.serverError(c, err, "zoom create meeting")
			return
		}

		if _, err := a.Interviews.Update(ctx, id, bson.M{
			"meetingId": meeting.MeetingID(),
			"joinUrl":   meeting.JoinURL,
			"startUrl":  meeting.StartURL,
			"updatedAt": time.Now().UTC(),
		}); err != nil {
			// The upstream meeting exists but was not recorded; surface the
			// failure so the caller retries.
			a.serverError(c, err, "persist meeting details")
			return
		}

		a.notifyMeetingCreated(iv, meeting)

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": meeting})
	}
}

func (a *App) notifyMeetingCreated(iv *models.Interview, meeting *zoom.Meeting) {
	subject, html := mailer.MeetingDetailsCandidate(iv, meeting.MeetingID(), meeting.Password, meeting.JoinURL)
	a.notify(iv.CandidateEmail, subject, html)

	for _, interviewer := range iv.InterviewerDetails {
		subject, html := mailer.MeetingDetailsInterviewer(iv, interviewer, meeting.MeetingID(), meeting.Password, meeting.JoinURL, meeting.StartURL)
		a.notify(interviewer.Email, subject, html)
	}
}
