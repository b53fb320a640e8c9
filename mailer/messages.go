package mailer

import (
	"fmt"
	"time"

	"interviewportal/models"
)

// HTML bodies for the scheduling and meeting notifications. Kept as plain
// builders rather than template files; the set is small and static.

func formatDate(t time.Time) string {
	return t.UTC().Format("Monday, 2 Jan 2006 15:04 MST")
}

func InterviewScheduledCandidate(iv *models.Interview) (subject, html string) {
	subject = fmt.Sprintf("Interview Scheduled - %s", iv.Position)
	html = fmt.Sprintf(`
      <h2>Interview Scheduled</h2>
      <p>Hello %s,</p>
      <p>Your interview for the position of %s has been scheduled.</p>
      <p><strong>Date &amp; Time:</strong> %s</p>
      <p><strong>Duration:</strong> %d minutes</p>
      <p>Please be prepared to join the meeting on time.</p>
    `, iv.CandidateName, iv.Position, formatDate(iv.InterviewDate), iv.Duration)
	return subject, html
}

func InterviewScheduledInterviewer(iv *models.Interview, interviewer models.UserRef) (subject, html string) {
	subject = fmt.Sprintf("Interview Scheduled - %s for %s", iv.CandidateName, iv.Position)
	html = fmt.Sprintf(`
      <h2>Interview Scheduled</h2>
      <p>Hello %s,</p>
      <p>You have been scheduled to interview %s for the position of %s.</p>
      <p><strong>Date &amp; Time:</strong> %s</p>
      <p><strong>Duration:</strong> %d minutes</p>
      <p><strong>Candidate Email:</strong> %s</p>
    `, interviewer.Name, iv.CandidateName, iv.Position, formatDate(iv.InterviewDate), iv.Duration, iv.CandidateEmail)
	return subject, html
}

func MeetingDetailsCandidate(iv *models.Interview, meetingID, password, joinURL string) (subject, html string) {
	subject = fmt.Sprintf("Zoom Meeting Details - Interview for %s", iv.Position)
	html = fmt.Sprintf(`
      <h2>Zoom Meeting Details</h2>
      <p>Hello %s,</p>
      <p>Here are the details for your upcoming interview:</p>
      <p><strong>Position:</strong> %s</p>
      <p><strong>Date &amp; Time:</strong> %s</p>
      <p><strong>Meeting ID:</strong> %s</p>
      <p><strong>Password:</strong> %s</p>
      <p>Click the link below to join the meeting:</p>
      <a href="%s">Join Meeting</a>
      <p>Please join a few minutes early to ensure everything is working properly.</p>
    `, iv.CandidateName, iv.Position, formatDate(iv.InterviewDate), meetingID, password, joinURL)
	return subject, html
}

func MeetingDetailsInterviewer(iv *models.Interview, interviewer models.UserRef, meetingID, password, joinURL, startURL string) (subject, html string) {
	subject = fmt.Sprintf("Zoom Meeting Details - Interview with %s", iv.CandidateName)
	html = fmt.Sprintf(`
      <h2>Zoom Meeting Details</h2>
      <p>Hello %s,</p>
      <p>Here are the details for your upcoming interview with %s:</p>
      <p><strong>Position:</strong> %s</p>
      <p><strong>Date &amp; Time:</strong> %s</p>
      <p><strong>Meeting ID:</strong> %s</p>
      <p><strong>Password:</strong> %s</p>
      <p>Click the link below to start the meeting (host):</p>
      <a href="%s">Start Meeting</a>
      <p>Or use this link to join:</p>
      <a href="%s">Join Meeting</a>
    `, interviewer.Name, iv.CandidateName, iv.Position, formatDate(iv.InterviewDate), meetingID, password, startURL, joinURL)
	return subject, html
}

func PasswordReset(name, resetURL string) (subject, html string) {
	subject = "Password Reset Request - Interview Portal"
	html = fmt.Sprintf(`
      <h2>Hello %s</h2>
      <p>You requested a password reset for your Interview Portal account.</p>
      <p>Please click the link below to reset your password:</p>
      <a href="%s" clicktracking="off">%s</a>
      <p>This link will expire in 1 hour.</p>
      <p>If you didn't request this reset, please ignore this email.</p>
    `, name, resetURL, resetURL)
	return subject, html
}

func PasswordResetConfirmation() (subject, html string) {
	subject = "Password Updated - Interview Portal"
	html = `
      <h2>Password Updated Successfully</h2>
      <p>Your password has been updated successfully for your Interview Portal account.</p>
      <p>If you did not make this change, please contact support immediately.</p>
    `
	return subject, html
}
