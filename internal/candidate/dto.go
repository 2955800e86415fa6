package candidate

import (
	"strings"

	"github.com/jobnest/jobnest/internal/core/validation"
)

type CreateCandidateDTO struct {
	UserID         *string      `json:"user_id,omitempty"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone,omitempty"`
	Location       string       `json:"location,omitempty"`
	Headline       string       `json:"headline,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	ResumeURL      string       `json:"resume_url,omitempty"`
	PortfolioURL   string       `json:"portfolio_url,omitempty"`
	LinkedinURL    string       `json:"linkedin_url,omitempty"`
	GithubURL      string       `json:"github_url,omitempty"`
}

func (dto CreateCandidateDTO) Validate() error {
	return validation.New().
		Required("first_name", dto.FirstName).
		Required("last_name", dto.LastName).
		Required("email", dto.Email).
		Custom(dto.Email == "" || strings.Contains(dto.Email, "@"), "email", "email must be a valid address").
		Err()
}

type UpdateCandidateDTO struct {
	FirstName      *string      `json:"first_name,omitempty"`
	LastName       *string      `json:"last_name,omitempty"`
	Email          *string      `json:"email,omitempty"`
	Phone          *string      `json:"phone,omitempty"`
	Location       *string      `json:"location,omitempty"`
	Headline       *string      `json:"headline,omitempty"`
	Summary        *string      `json:"summary,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
	Certifications []string     `json:"certifications,omitempty"`
	ResumeURL      *string      `json:"resume_url,omitempty"`
	PortfolioURL   *string      `json:"portfolio_url,omitempty"`
	LinkedinURL    *string      `json:"linkedin_url,omitempty"`
	GithubURL      *string      `json:"github_url,omitempty"`
}

func (dto UpdateCandidateDTO) Validate() error {
	b := validation.New()
	if dto.FirstName != nil {
		b.Required("first_name", *dto.FirstName)
	}
	if dto.LastName != nil {
		b.Required("last_name", *dto.LastName)
	}
	if dto.Email != nil {
		b.Required("email", *dto.Email)
		b.Custom(*dto.Email == "" || strings.Contains(*dto.Email, "@"), "email", "email must be a valid address")
	}
	return b.Err()
}

// ListCandidatesFilter narrows List results; zero values mean no constraint.
type ListCandidatesFilter struct {
	Skill    string
	Location string
}
