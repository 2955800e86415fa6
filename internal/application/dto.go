package application

import (
	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/core/validation"
)

func newJobClosedError() error {
	return internal.NewValidationError("Job is not open for applications", internal.ErrCodeInvalidStatus)
}

type CreateApplicationDTO struct {
	CandidateID string            `json:"candidate_id"`
	JobID       string            `json:"job_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Answers     map[string]string `json:"answers,omitempty"`
}

func (dto CreateApplicationDTO) Validate() error {
	return validation.New().
		Required("candidate_id", dto.CandidateID).
		Required("job_id", dto.JobID).
		Err()
}

type UpdateApplicationDTO struct {
	Status      *string           `json:"status,omitempty"`
	CoverLetter *string           `json:"cover_letter,omitempty"`
	Answers     map[string]string `json:"answers,omitempty"`
}

func (dto UpdateApplicationDTO) Validate() error {
	b := validation.New()
	if dto.Status != nil {
		b.Required("status", *dto.Status)
		b.OneOf("status", *dto.Status, ValidStatuses...)
	}
	return b.Err()
}

// ListApplicationsFilter narrows List results; zero values mean no
// constraint.
type ListApplicationsFilter struct {
	JobID       string
	CandidateID string
	Status      string
}
