package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/tenant"
)

// Repository defines the data access methods for interviews.
type Repository interface {
	Create(ctx context.Context, i *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	List(ctx context.Context, filter ListInterviewsFilter) ([]*Interview, error)
	Update(ctx context.Context, i *Interview) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	bus    *events.EventBus
	views  *cache.Views
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, views *cache.Views, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		views:  views,
		logger: logger,
	}
}

func (s *Service) ScheduleInterview(ctx context.Context, createdBy string, dto ScheduleInterviewDTO) (*Interview, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("interview validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	i := &Interview{
		ID:            uuid.NewString(),
		CandidateID:   dto.CandidateID,
		JobID:         dto.JobID,
		Interviewers:  dto.Interviewers,
		ScheduledDate: dto.ScheduledDate,
		StartTime:     dto.StartTime,
		EndTime:       dto.EndTime,
		Type:          dto.Type,
		Status:        StatusScheduled,
		Location:      dto.Location,
		MeetingLink:   dto.MeetingLink,
		Notes:         dto.Notes,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.Error("failed to schedule interview", "error", err)
		return nil, err
	}

	s.publishChanged(ctx, i, "created")
	s.logger.Info("interview scheduled",
		"interview_id", i.ID,
		"candidate_id", i.CandidateID,
		"scheduled_date", i.ScheduledDate)
	return i, nil
}

func (s *Service) GetInterview(ctx context.Context, id string) (*Interview, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListInterviews(ctx context.Context, filter ListInterviewsFilter) ([]*Interview, error) {
	cacheable := filter == ListInterviewsFilter{}
	tenantID := tenant.IDFromContext(ctx)

	if cacheable {
		var cached []*Interview
		if s.views.GetList(ctx, events.EntityInterview, tenantID, &cached) {
			return cached, nil
		}
	}

	interviews, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list interviews", "error", err)
		return nil, err
	}

	if cacheable {
		s.views.PutList(ctx, events.EntityInterview, tenantID, interviews)
	}
	return interviews, nil
}

// ListAssigned serves the interviews a panel member sits on.
func (s *Service) ListAssigned(ctx context.Context, interviewerID string) ([]*Interview, error) {
	return s.repo.List(ctx, ListInterviewsFilter{InterviewerID: interviewerID})
}

func (s *Service) UpdateInterview(ctx context.Context, id string, dto UpdateInterviewDTO) (*Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("interview update validation failed", "error", err, "interview_id", id)
		return nil, err
	}

	if dto.Interviewers != nil {
		i.Interviewers = dto.Interviewers
	}
	if dto.ScheduledDate != nil {
		i.ScheduledDate = *dto.ScheduledDate
		if i.Status == StatusScheduled {
			i.Status = StatusRescheduled
		}
	}
	if dto.StartTime != nil {
		i.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		i.EndTime = *dto.EndTime
	}
	if dto.Type != nil {
		i.Type = *dto.Type
	}
	if dto.Status != nil {
		i.Status = *dto.Status
	}
	if dto.Location != nil {
		i.Location = *dto.Location
	}
	if dto.MeetingLink != nil {
		i.MeetingLink = *dto.MeetingLink
	}
	if dto.Notes != nil {
		i.Notes = *dto.Notes
	}
	if dto.Transcript != nil {
		i.Transcript = *dto.Transcript
	}
	i.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to update interview", "error", err, "interview_id", id)
		return nil, err
	}

	s.publishChanged(ctx, i, "updated")
	return i, nil
}

// CancelInterview moves the interview to cancelled without deleting its
// record or any feedback already attached.
func (s *Service) CancelInterview(ctx context.Context, id string) (*Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !i.CanBeCancelled() {
		s.logger.Warn("cannot cancel interview in current status",
			"interview_id", id,
			"current_status", i.Status)
		return nil, internal.NewValidationError("Interview cannot be cancelled in its current status", internal.ErrCodeInvalidStatus)
	}

	i.Status = StatusCancelled
	i.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to cancel interview", "error", err, "interview_id", id)
		return nil, err
	}

	s.publishChanged(ctx, i, "updated")
	s.logger.Info("interview cancelled", "interview_id", id)
	return i, nil
}

// SubmitFeedback appends one panel member's assessment. A second submission
// from the same interviewer replaces their earlier entry.
func (s *Service) SubmitFeedback(ctx context.Context, id, interviewerID string, dto SubmitFeedbackDTO) (*Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("interview feedback validation failed", "error", err, "interview_id", id)
		return nil, err
	}

	if !i.HasInterviewer(interviewerID) {
		s.logger.Warn("feedback from non-panel member rejected",
			"interview_id", id,
			"user_id", interviewerID)
		return nil, internal.ErrUnauthorizedAccess
	}

	entry := FeedbackEntry{
		InterviewerID:  interviewerID,
		Rating:         dto.Rating,
		Strengths:      dto.Strengths,
		Weaknesses:     dto.Weaknesses,
		Comments:       dto.Comments,
		Recommendation: dto.Recommendation,
		SubmittedAt:    time.Now(),
	}

	replaced := false
	for idx, existing := range i.Feedback {
		if existing.InterviewerID == interviewerID {
			i.Feedback[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		i.Feedback = append(i.Feedback, entry)
	}
	i.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, i); err != nil {
		s.logger.Error("failed to submit interview feedback", "error", err, "interview_id", id)
		return nil, err
	}

	s.publishChanged(ctx, i, "updated")
	s.logger.Info("interview feedback submitted", "interview_id", id, "interviewer_id", interviewerID)
	return i, nil
}

func (s *Service) DeleteInterview(ctx context.Context, id string) error {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete interview", "error", err, "interview_id", id)
		return err
	}

	s.publishChanged(ctx, i, "deleted")
	return nil
}

func (s *Service) publishChanged(ctx context.Context, i *Interview, action string) {
	if s.bus == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EntityInterview, i.ID, i.TenantID, action)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish interview event", "error", err, "interview_id", i.ID)
	}
}
