package dto

type GenerateSignatureDTO struct {
	MeetingNumber string `json:"meetingNumber" binding:"required"`
	Role          *int   `json:"role" binding:"required,gte=0,lte=1"` // 0=participant, 1=host
}

type CreateMeetingDTO struct {
	InterviewID string `json:"interviewId" binding:"required"`
	Topic       string `json:"topic"`
	StartTime   string `json:"start_time"`
	Duration    int    `json:"duration" binding:"omitempty,gte=15,lte=240"`
	Password    string `json:"password"`
}
