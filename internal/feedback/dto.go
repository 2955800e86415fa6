package feedback

import (
	"github.com/jobnest/jobnest/internal/core/validation"
)

type CreateFeedbackDTO struct {
	CandidateID    string  `json:"candidate_id"`
	JobID          string  `json:"job_id"`
	InterviewID    *string `json:"interview_id,omitempty"`
	Type           string  `json:"type,omitempty"`
	Rating         int     `json:"rating"`
	Strengths      string  `json:"strengths,omitempty"`
	Weaknesses     string  `json:"weaknesses,omitempty"`
	Comments       string  `json:"comments"`
	Recommendation string  `json:"recommendation"`
}

func (dto CreateFeedbackDTO) Validate() error {
	return validation.New().
		Required("candidate_id", dto.CandidateID).
		Required("job_id", dto.JobID).
		Rating("rating", dto.Rating).
		Required("comments", dto.Comments).
		Required("recommendation", dto.Recommendation).
		OneOf("recommendation", dto.Recommendation, ValidRecommendations...).
		Err()
}

type UpdateFeedbackDTO struct {
	Rating         *int    `json:"rating,omitempty"`
	Strengths      *string `json:"strengths,omitempty"`
	Weaknesses     *string `json:"weaknesses,omitempty"`
	Comments       *string `json:"comments,omitempty"`
	Recommendation *string `json:"recommendation,omitempty"`
}

func (dto UpdateFeedbackDTO) Validate() error {
	b := validation.New()
	if dto.Rating != nil {
		b.Rating("rating", *dto.Rating)
	}
	if dto.Comments != nil {
		b.Required("comments", *dto.Comments)
	}
	if dto.Recommendation != nil {
		b.Required("recommendation", *dto.Recommendation)
		b.OneOf("recommendation", *dto.Recommendation, ValidRecommendations...)
	}
	return b.Err()
}

// ListFeedbackFilter narrows List results; zero values mean no constraint.
type ListFeedbackFilter struct {
	CandidateID string
	JobID       string
	InterviewID string
	ReviewerID  string
}
