package application

import (
	"time"
)

const (
	StatusApplied   = "applied"
	StatusScreening = "screening"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusHired     = "hired"
	StatusRejected  = "rejected"
)

// ValidStatuses lists every pipeline stage an application can be in.
var ValidStatuses = []string{
	StatusApplied, StatusScreening, StatusInterview,
	StatusOffer, StatusHired, StatusRejected,
}

// Application links a candidate to a job posting within one tenant.
type Application struct {
	ID          string            `json:"id" gorm:"primaryKey"`
	TenantID    string            `json:"tenant_id" gorm:"column:tenant_id;index;not null"`
	CandidateID string            `json:"candidate_id" gorm:"column:candidate_id;not null;index"`
	JobID       string            `json:"job_id" gorm:"column:job_id;not null;index"`
	Status      string            `json:"status" gorm:"default:applied"`
	AppliedDate time.Time         `json:"applied_date" gorm:"column:applied_date"`
	CoverLetter string            `json:"cover_letter,omitempty" gorm:"column:cover_letter"`
	Answers     map[string]string `json:"answers,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"column:updated_at"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) SetTenantID(tenantID string) { a.TenantID = tenantID }
func (a *Application) GetTenantID() string         { return a.TenantID }

// Terminal reports whether the application has left the active pipeline.
func (a *Application) Terminal() bool {
	return a.Status == StatusHired || a.Status == StatusRejected
}
