package feedback

import (
	"time"
)

const (
	TypeInterview = "interview"
	TypeScreening = "screening"
	TypeGeneral   = "general"
)

const (
	RecommendStrongYes = "strong_yes"
	RecommendYes       = "yes"
	RecommendNeutral   = "neutral"
	RecommendNo        = "no"
	RecommendStrongNo  = "strong_no"
)

var ValidRecommendations = []string{
	RecommendStrongYes, RecommendYes, RecommendNeutral,
	RecommendNo, RecommendStrongNo,
}

// Feedback is a standalone candidate review, optionally tied to a specific
// interview.
type Feedback struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	TenantID       string    `json:"tenant_id" gorm:"column:tenant_id;index;not null"`
	CandidateID    string    `json:"candidate_id" gorm:"column:candidate_id;not null;index"`
	JobID          string    `json:"job_id" gorm:"column:job_id;not null"`
	InterviewID    *string   `json:"interview_id,omitempty" gorm:"column:interview_id"`
	ReviewerID     string    `json:"reviewer_id" gorm:"column:reviewer_id;not null"`
	Type           string    `json:"type"`
	Rating         int       `json:"rating"`
	Strengths      string    `json:"strengths,omitempty"`
	Weaknesses     string    `json:"weaknesses,omitempty"`
	Comments       string    `json:"comments"`
	Recommendation string    `json:"recommendation"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Feedback) TableName() string { return "feedback" }

func (f *Feedback) SetTenantID(tenantID string) { f.TenantID = tenantID }
func (f *Feedback) GetTenantID() string         { return f.TenantID }
