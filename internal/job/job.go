package job

import (
	"time"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

// Salary is an optional compensation range attached to a posting.
type Salary struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

// Job is a tenant-scoped posting. TenantID is stamped by the data gateway,
// never by callers.
type Job struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	TenantID         string     `json:"tenant_id" gorm:"column:tenant_id;index;not null"`
	Title            string     `json:"title" gorm:"not null"`
	Department       string     `json:"department"`
	Location         string     `json:"location"`
	Type             string     `json:"type"`
	Status           string     `json:"status" gorm:"default:draft"`
	Description      string     `json:"description"`
	Requirements     []string   `json:"requirements" gorm:"serializer:json"`
	Responsibilities []string   `json:"responsibilities" gorm:"serializer:json"`
	Salary           *Salary    `json:"salary,omitempty" gorm:"serializer:json"`
	PostedDate       *time.Time `json:"posted_date,omitempty" gorm:"column:posted_date"`
	ClosingDate      *time.Time `json:"closing_date,omitempty" gorm:"column:closing_date"`
	CreatedBy        string     `json:"created_by" gorm:"column:created_by"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Job) TableName() string { return "jobs" }

func (j *Job) SetTenantID(tenantID string) { j.TenantID = tenantID }
func (j *Job) GetTenantID() string         { return j.TenantID }

func (j *Job) IsOpen() bool { return j.Status == StatusOpen }
