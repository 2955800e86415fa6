package candidate

import (
	"time"
)

// Experience is one prior position on a candidate profile.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one degree or program on a candidate profile.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartYear   string `json:"start_year,omitempty"`
	EndYear     string `json:"end_year,omitempty"`
}

// Candidate is a tenant-scoped applicant profile. Email is unique within a
// tenant but may recur across tenants.
type Candidate struct {
	ID             string       `json:"id" gorm:"primaryKey"`
	TenantID       string       `json:"tenant_id" gorm:"column:tenant_id;index;not null;uniqueIndex:idx_candidates_tenant_email"`
	UserID         *string      `json:"user_id,omitempty" gorm:"column:user_id"`
	FirstName      string       `json:"first_name" gorm:"column:first_name;not null"`
	LastName       string       `json:"last_name" gorm:"column:last_name;not null"`
	Email          string       `json:"email" gorm:"not null;uniqueIndex:idx_candidates_tenant_email"`
	Phone          string       `json:"phone,omitempty"`
	Location       string       `json:"location,omitempty"`
	Headline       string       `json:"headline,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Skills         []string     `json:"skills" gorm:"serializer:json"`
	Experience     []Experience `json:"experience" gorm:"serializer:json"`
	Education      []Education  `json:"education" gorm:"serializer:json"`
	Certifications []string     `json:"certifications" gorm:"serializer:json"`
	ResumeURL      string       `json:"resume_url,omitempty" gorm:"column:resume_url"`
	PortfolioURL   string       `json:"portfolio_url,omitempty" gorm:"column:portfolio_url"`
	LinkedinURL    string       `json:"linkedin_url,omitempty" gorm:"column:linkedin_url"`
	GithubURL      string       `json:"github_url,omitempty" gorm:"column:github_url"`
	CreatedAt      time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"column:updated_at"`
}

func (Candidate) TableName() string { return "candidates" }

func (c *Candidate) SetTenantID(tenantID string) { c.TenantID = tenantID }
func (c *Candidate) GetTenantID() string         { return c.TenantID }

func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}
