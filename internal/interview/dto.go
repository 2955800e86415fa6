package interview

import (
	"time"

	"github.com/jobnest/jobnest/internal/core/validation"
)

type ScheduleInterviewDTO struct {
	CandidateID   string    `json:"candidate_id"`
	JobID         string    `json:"job_id"`
	Interviewers  []string  `json:"interviewers"`
	ScheduledDate time.Time `json:"scheduled_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Type          string    `json:"type"`
	Location      string    `json:"location,omitempty"`
	MeetingLink   string    `json:"meeting_link,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

func (dto ScheduleInterviewDTO) Validate() error {
	return validation.New().
		Required("candidate_id", dto.CandidateID).
		Required("job_id", dto.JobID).
		RequiredSlice("interviewers", dto.Interviewers).
		Custom(!dto.ScheduledDate.IsZero(), "scheduled_date", "scheduled_date is required").
		Required("start_time", dto.StartTime).
		Required("end_time", dto.EndTime).
		Err()
}

// UpdateInterviewDTO covers reschedules and note-taking; nil fields are
// left untouched.
type UpdateInterviewDTO struct {
	Interviewers  []string   `json:"interviewers,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	StartTime     *string    `json:"start_time,omitempty"`
	EndTime       *string    `json:"end_time,omitempty"`
	Type          *string    `json:"type,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Location      *string    `json:"location,omitempty"`
	MeetingLink   *string    `json:"meeting_link,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Transcript    *string    `json:"transcript,omitempty"`
}

func (dto UpdateInterviewDTO) Validate() error {
	b := validation.New()
	if dto.Status != nil {
		b.Required("status", *dto.Status)
		b.OneOf("status", *dto.Status, ValidStatuses...)
	}
	return b.Err()
}

// SubmitFeedbackDTO is one panel member's assessment of the interview.
type SubmitFeedbackDTO struct {
	Rating         int    `json:"rating"`
	Strengths      string `json:"strengths,omitempty"`
	Weaknesses     string `json:"weaknesses,omitempty"`
	Comments       string `json:"comments,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

func (dto SubmitFeedbackDTO) Validate() error {
	return validation.New().
		Rating("rating", dto.Rating).
		Err()
}

// ListInterviewsFilter narrows List results; zero values mean no
// constraint.
type ListInterviewsFilter struct {
	CandidateID   string
	JobID         string
	Status        string
	InterviewerID string
}
