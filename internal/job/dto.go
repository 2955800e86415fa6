package job

import (
	"time"

	"github.com/jobnest/jobnest/internal/core/validation"
)

// CreateJobDTO is the request payload for posting a job. Validation
// reports every invalid field, not just the first.
type CreateJobDTO struct {
	Title            string     `json:"title"`
	Department       string     `json:"department"`
	Location         string     `json:"location"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	Description      string     `json:"description"`
	Requirements     []string   `json:"requirements"`
	Responsibilities []string   `json:"responsibilities"`
	Salary           *Salary    `json:"salary,omitempty"`
	PostedDate       *time.Time `json:"posted_date,omitempty"`
	ClosingDate      *time.Time `json:"closing_date,omitempty"`
}

func (dto CreateJobDTO) Validate() error {
	return validation.New().
		Required("title", dto.Title).
		MinLength("title", dto.Title, 2).
		Required("department", dto.Department).
		MinLength("department", dto.Department, 2).
		Required("location", dto.Location).
		MinLength("location", dto.Location, 2).
		Required("description", dto.Description).
		MinLength("description", dto.Description, 10).
		OneOf("status", dto.Status, StatusOpen, StatusClosed, StatusDraft).
		Err()
}

// UpdateJobDTO is a partial patch: nil fields are left untouched.
type UpdateJobDTO struct {
	Title            *string    `json:"title,omitempty"`
	Department       *string    `json:"department,omitempty"`
	Location         *string    `json:"location,omitempty"`
	Type             *string    `json:"type,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Requirements     []string   `json:"requirements,omitempty"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Salary           *Salary    `json:"salary,omitempty"`
	PostedDate       *time.Time `json:"posted_date,omitempty"`
	ClosingDate      *time.Time `json:"closing_date,omitempty"`
}

func (dto UpdateJobDTO) Validate() error {
	b := validation.New()
	if dto.Title != nil {
		b.Required("title", *dto.Title).MinLength("title", *dto.Title, 2)
	}
	if dto.Department != nil {
		b.Required("department", *dto.Department).MinLength("department", *dto.Department, 2)
	}
	if dto.Location != nil {
		b.Required("location", *dto.Location).MinLength("location", *dto.Location, 2)
	}
	if dto.Description != nil {
		b.Required("description", *dto.Description).MinLength("description", *dto.Description, 10)
	}
	if dto.Status != nil {
		b.OneOf("status", *dto.Status, StatusOpen, StatusClosed, StatusDraft)
	}
	return b.Err()
}

// ListJobsFilter narrows List results; zero values mean no constraint.
type ListJobsFilter struct {
	Status     string
	Department string
}
