package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"interviewportal/dto"
	"interviewportal/mailer"
	"interviewportal/models"
	"interviewportal/utils"
)

// resolveInterviewers turns the mixed interviewers field (hex ids or email
// addresses) into user ids. Email lists must resolve completely: a partial
// match fails with the unresolved addresses and nothing is persisted.
func (a *App) resolveInterviewers(ctx context.Context, raw []string, fallback bson.ObjectID) ([]bson.ObjectID, string, error) {
	if len(raw) == 0 {
		return []bson.ObjectID{fallback}, "", nil
	}

	if !strings.Contains(raw[0], "@") {
		ids, err := utils.StringsToObjectIDs(raw)
		if err != nil {
			return nil, "Invalid interviewer id: " + err.Error(), nil
		}
		return ids, "", nil
	}

	emails := make([]string, 0, len(raw))
	for _, e := range raw {
		emails = append(emails, utils.NormalizeEmail(e))
	}

	users, err := a.Users.FindByEmails(ctx, emails)
	if err != nil {
		return nil, "", err
	}

	byEmail := map[string]bson.ObjectID{}
	for _, u := range users {
		byEmail[u.Email] = u.ID
	}

	var missing []string
	ids := make([]bson.ObjectID, 0, len(emails))
	for _, e := range emails {
		id, ok := byEmail[e]
		if !ok {
			missing = append(missing, e)
			continue
		}
		ids = append(ids, id)
	}

	if len(missing) > 0 {
		msg := fmt.Sprintf(
			"The following interviewer emails were not found in the system: %s. Please make sure all interviewers are registered users.",
			strings.Join(missing, ", "),
		)
		return nil, msg, nil
	}

	return ids, "", nil
}

// GET /api/interviews
func (a *App) GetInterviews() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		q, err := utils.ParseListQuery(c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		interviews, total, err := a.Interviews.List(ctx, q)
		if err != nil {
			a.serverError(c, err, "list interviews")
			return
		}

		if err := a.populateInterviewers(ctx, interviews...); err != nil {
			a.serverError(c, err, "populate interviewers")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"count":      len(interviews),
			"pagination": utils.BuildPagination(q.Page, q.Limit, total),
			"data":       interviews,
		})
	}
}

// GET /api/interviews/:id
func (a *App) GetInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
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

		c.JSON(http.StatusOK, gin.H{"success": true, "data": iv})
	}
}

// POST /api/interviews
func (a *App) CreateInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateInterviewDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		ctx := c.Request.Context()

		callerID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		interviewerIDs, userMsg, err := a.resolveInterviewers(ctx, body.Interviewers, callerID)
		if err != nil {
			a.serverError(c, err, "resolve interviewers")
			return
		}
		if userMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": userMsg})
			return
		}

		status := models.InterviewStatus(body.Status)
		if status == "" {
			status = models.StatusScheduled
		}

		now := time.Now().UTC()
		iv := models.Interview{
			ID:             bson.NewObjectID(),
			CandidateName:  body.CandidateName,
			CandidateEmail: utils.NormalizeEmail(body.CandidateEmail),
			Position:       body.Position,
			InterviewDate:  body.InterviewDate.UTC(),
			Duration:       body.Duration,
			Interviewers:   interviewerIDs,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := a.Interviews.Insert(ctx, &iv); err != nil {
			a.serverError(c, err, "create interview")
			return
		}

		if err := a.populateInterviewers(ctx, &iv); err != nil {
			a.serverError(c, err, "populate interviewers")
			return
		}

		a.notifyInterviewScheduled(&iv)

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": iv})
	}
}

func (a *App) notifyInterviewScheduled(iv *models.Interview) {
	subject, html := mailer.InterviewScheduledCandidate(iv)
	a.notify(iv.CandidateEmail, subject, html)

	for _, interviewer := range iv.InterviewerDetails {
		subject, html := mailer.InterviewScheduledInterviewer(iv, interviewer)
		a.notify(interviewer.Email, subject, html)
	}
}

// PUT /api/interviews/:id
func (a *App) UpdateInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		var body dto.UpdateInterviewDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		if _, err := a.Interviews.FindByID(ctx, id); err != nil {
			notFound(c, "Interview not found")
			return
		}

		set := bson.M{"updatedAt": time.Now().UTC()}
		if body.CandidateName != nil {
			set["candidateName"] = *body.CandidateName
		}
		if body.CandidateEmail != nil {
			set["candidateEmail"] = utils.NormalizeEmail(*body.CandidateEmail)
		}
		if body.Position != nil {
			set["position"] = *body.Position
		}
		if body.InterviewDate != nil {
			set["interviewDate"] = body.InterviewDate.UTC()
		}
		if body.Duration != nil {
			set["duration"] = *body.Duration
		}
		if body.Status != nil {
			set["status"] = *body.Status
		}
		if body.Interviewers != nil {
			callerID, _ := currentUserID(c)
			ids, userMsg, err := a.resolveInterviewers(ctx, *body.Interviewers, callerID)
			if err != nil {
				a.serverError(c, err, "resolve interviewers")
				return
			}
			if userMsg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": userMsg})
				return
			}
			set["interviewers"] = ids
		}

		updated, err := a.Interviews.Update(ctx, id, set)
		if err != nil {
			a.serverError(c, err, "update interview")
			return
		}

		if err := a.populateInterviewers(ctx, updated); err != nil {
			a.serverError(c, err, "populate interviewers")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

// DELETE /api/interviews/:id
func (a *App) DeleteInterview() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		deleted, err := a.Interviews.Delete(c.Request.Context(), id)
		if err != nil {
			a.serverError(c, err, "delete interview")
			return
		}
		if deleted == 0 {
			notFound(c, "Interview not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Interview deleted successfully",
		})
	}
}

// POST /api/interviews/:id/feedback
func (a *App) SubmitFeedback() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		var body dto.SubmitFeedbackDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err)
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
			return
		}

		iv, err := a.Interviews.FindByID(ctx, id)
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		if !iv.HasInterviewer(userID) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Not authorized to submit feedback for this interview",
			})
			return
		}

		feedback := models.Feedback{
			Rating:      body.Rating,
			Comments:    body.Comments,
			SubmittedBy: userID,
			SubmittedAt: time.Now().UTC(),
		}

		updated, err := a.Interviews.Update(ctx, id, bson.M{
			"feedback":  feedback,
			"updatedAt": time.Now().UTC(),
		})
		if err != nil {
			a.serverError(c, err, "submit feedback")
			return
		}

		if err := a.populateInterviewers(ctx, updated); err != nil {
			a.serverError(c, err, "populate interviewers")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Feedback submitted successfully",
			"data":    updated,
		})
	}
}

// POST /api/interviews/:id/resume
func (a *App) UploadResume() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		iv, err := a.Interviews.FindByID(ctx, id)
		if err != nil {
			notFound(c, "Interview not found")
			return
		}

		fh, err := c.FormFile("resume")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing resume file"})
			return
		}

		gcsClient, err := utils.NewGCSClient(ctx, a.Cfg.GCS.CredentialsFile)
		if err != nil {
			a.serverError(c, err, "init gcs client")
			return
		}
		defer gcsClient.Close()

		att, err := utils.UploadResumeToGCS(ctx, gcsClient, a.Cfg.GCS.Bucket, id.Hex(), iv.CandidateName, fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		if _, err := a.Interviews.Update(ctx, id, bson.M{
			"resume":    att,
			"updatedAt": time.Now().UTC(),
		}); err != nil {
			// cleanup uploaded object best effort
			_ = utils.DeleteGCSObjects(ctx, gcsClient, a.Cfg.GCS.Bucket, []string{att.ObjectName})
			a.serverError(c, err, "store resume attachment")
			return
		}

		// A replaced resume leaves an orphan object behind; remove it.
		if iv.Resume != nil && iv.Resume.ObjectName != att.ObjectName {
			_ = utils.DeleteGCSObjects(ctx, gcsClient, a.Cfg.GCS.Bucket, []string{iv.Resume.ObjectName})
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": att})
	}
}
