package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type InterviewStatus string

const (
	StatusScheduled  InterviewStatus = "scheduled"
	StatusInProgress InterviewStatus = "in-progress"
	StatusCompleted  InterviewStatus = "completed"
	StatusCancelled  InterviewStatus = "cancelled"
)

type Feedback struct {
	Rating      int           `bson:"rating" json:"rating"`
	Comments    string        `bson:"comments,omitempty" json:"comments,omitempty"`
	SubmittedBy bson.ObjectID `bson:"submittedBy" json:"submittedBy"`
	SubmittedAt time.Time     `bson:"submittedAt" json:"submittedAt"`
}

// ResumeAttachment records a candidate resume uploaded to object storage.
type ResumeAttachment struct {
	PublicURL  string    `bson:"publicUrl" json:"publicUrl"`
	ObjectName string    `bson:"objectName" json:"objectName"`
	MimeType   string    `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64     `bson:"sizeBytes" json:"sizeBytes"`
	FileName   string    `bson:"fileName" json:"fileName"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

type Interview struct {
	ID             bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	CandidateName  string          `bson:"candidateName" json:"candidateName"`
	CandidateEmail string          `bson:"candidateEmail" json:"candidateEmail"`
	Position       string          `bson:"position" json:"position"`
	InterviewDate  time.Time       `bson:"interviewDate" json:"interviewDate"`
	Duration       int             `bson:"duration" json:"duration"` // minutes
	Interviewers   []bson.ObjectID `bson:"interviewers" json:"-"`

	MeetingID string `bson:"meetingId,omitempty" json:"meetingId,omitempty"`
	JoinURL   string `bson:"joinUrl,omitempty" json:"joinUrl,omitempty"`
	StartURL  string `bson:"startUrl,omitempty" json:"startUrl,omitempty"`

	Status   InterviewStatus   `bson:"status" json:"status"`
	Feedback *Feedback         `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Resume   *ResumeAttachment `bson:"resume,omitempty" json:"resume,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Filled from the users collection on reads, never stored.
	InterviewerDetails []UserRef `bson:"-" json:"interviewers"`
}

func (i *Interview) HasInterviewer(userID bson.ObjectID) bool {
	for _, id := range i.Interviewers {
		if id == userID {
			return true
		}
	}
	return false
}
