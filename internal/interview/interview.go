package interview

import (
	"time"
)

const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
	StatusNoShow      = "no_show"
)

var ValidStatuses = []string{
	StatusScheduled, StatusCompleted, StatusCancelled,
	StatusRescheduled, StatusNoShow,
}

const (
	TypePhone      = "phone"
	TypeVideo      = "video"
	TypeOnsite     = "onsite"
	TypeTechnical  = "technical"
	TypeBehavioral = "behavioral"
)

// FeedbackEntry is one interviewer's structured assessment, attached to the
// interview after it takes place.
type FeedbackEntry struct {
	InterviewerID  string    `json:"interviewer_id"`
	Rating         int       `json:"rating"`
	Strengths      string    `json:"strengths,omitempty"`
	Weaknesses     string    `json:"weaknesses,omitempty"`
	Comments       string    `json:"comments,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Interview is a tenant-scoped scheduled meeting between interviewers and a
// candidate for a specific job.
type Interview struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	TenantID      string          `json:"tenant_id" gorm:"column:tenant_id;index;not null"`
	CandidateID   string          `json:"candidate_id" gorm:"column:candidate_id;not null;index"`
	JobID         string          `json:"job_id" gorm:"column:job_id;not null;index"`
	Interviewers  []string        `json:"interviewers" gorm:"serializer:json"`
	ScheduledDate time.Time       `json:"scheduled_date" gorm:"column:scheduled_date"`
	StartTime     string          `json:"start_time" gorm:"column:start_time"`
	EndTime       string          `json:"end_time" gorm:"column:end_time"`
	Type          string          `json:"type"`
	Status        string          `json:"status" gorm:"default:scheduled"`
	Location      string          `json:"location,omitempty"`
	MeetingLink   string          `json:"meeting_link,omitempty" gorm:"column:meeting_link"`
	Notes         string          `json:"notes,omitempty"`
	Transcript    string          `json:"transcript,omitempty"`
	Feedback      []FeedbackEntry `json:"feedback" gorm:"serializer:json"`
	CreatedBy     string          `json:"created_by" gorm:"column:created_by"`
	CreatedAt     time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Interview) TableName() string { return "interviews" }

func (i *Interview) SetTenantID(tenantID string) { i.TenantID = tenantID }
func (i *Interview) GetTenantID() string         { return i.TenantID }

// HasInterviewer reports whether the given user sits on the panel.
func (i *Interview) HasInterviewer(userID string) bool {
	for _, id := range i.Interviewers {
		if id == userID {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether cancellation is still meaningful.
func (i *Interview) CanBeCancelled() bool {
	return i.Status == StatusScheduled || i.Status == StatusRescheduled
}
