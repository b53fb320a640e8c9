package dto

import "time"

// Interviewers accepts either user ids (hex) or registered email addresses;
// a mixed or partially-unresolvable email list fails the whole request.
type CreateInterviewDTO struct {
	CandidateName  string    `json:"candidateName" binding:"required,min=2"`
	CandidateEmail string    `json:"candidateEmail" binding:"required,email"`
	Position       string    `json:"position" binding:"required"`
	InterviewDate  time.Time `json:"interviewDate" binding:"required"`
	Duration       int       `json:"duration" binding:"required,gte=15,lte=240"`
	Interviewers   []string  `json:"interviewers"`
	Status         string    `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
}

// UpdateInterviewDTO — all fields optional pointers
type UpdateInterviewDTO struct {
	CandidateName  *string    `json:"candidateName" binding:"omitempty,min=2"`
	CandidateEmail *string    `json:"candidateEmail" binding:"omitempty,email"`
	Position       *string    `json:"position" binding:"omitempty,min=1"`
	InterviewDate  *time.Time `json:"interviewDate"`
	Duration       *int       `json:"duration" binding:"omitempty,gte=15,lte=240"`
	Interviewers   *[]string  `json:"interviewers" binding:"omitempty,min=1"`
	Status         *string    `json:"status" binding:"omitempty,oneof=scheduled in-progress completed cancelled"`
}

type SubmitFeedbackDTO struct {
	Rating   int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comments string `json:"comments" binding:"omitempty,max=5000"`
}
