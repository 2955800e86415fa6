package feedback

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/tenant"
)

// Repository defines the data access methods for feedback.
type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, filter ListFeedbackFilter) ([]*Feedback, error)
	Update(ctx context.Context, f *Feedback) error
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

func (s *Service) CreateFeedback(ctx context.Context, reviewerID string, dto CreateFeedbackDTO) (*Feedback, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("feedback validation failed", "error", err)
		return nil, err
	}

	feedbackType := dto.Type
	if feedbackType == "" {
		feedbackType = TypeGeneral
	}

	now := time.Now()
	f := &Feedback{
		ID:             uuid.NewString(),
		CandidateID:    dto.CandidateID,
		JobID:          dto.JobID,
		InterviewID:    dto.InterviewID,
		ReviewerID:     reviewerID,
		Type:           feedbackType,
		Rating:         dto.Rating,
		Strengths:      dto.Strengths,
		Weaknesses:     dto.Weaknesses,
		Comments:       dto.Comments,
		Recommendation: dto.Recommendation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("failed to create feedback", "error", err)
		return nil, err
	}

	s.publishChanged(ctx, f, "created")
	s.logger.Info("feedback recorded", "feedback_id", f.ID, "candidate_id", f.CandidateID)
	return f, nil
}

func (s *Service) GetFeedback(ctx context.Context, id string) (*Feedback, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListFeedback(ctx context.Context, filter ListFeedbackFilter) ([]*Feedback, error) {
	cacheable := filter == ListFeedbackFilter{}
	tenantID := tenant.IDFromContext(ctx)

	if cacheable {
		var cached []*Feedback
		if s.views.GetList(ctx, events.EntityFeedback, tenantID, &cached) {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list feedback", "error", err)
		return nil, err
	}

	if cacheable {
		s.views.PutList(ctx, events.EntityFeedback, tenantID, items)
	}
	return items, nil
}

func (s *Service) UpdateFeedback(ctx context.Context, id string, dto UpdateFeedbackDTO) (*Feedback, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("feedback update validation failed", "error", err, "feedback_id", id)
		return nil, err
	}

	if dto.Rating != nil {
		f.Rating = *dto.Rating
	}
	if dto.Strengths != nil {
		f.Strengths = *dto.Strengths
	}
	if dto.Weaknesses != nil {
		f.Weaknesses = *dto.Weaknesses
	}
	if dto.Comments != nil {
		f.Comments = *dto.Comments
	}
	if dto.Recommendation != nil {
		f.Recommendation = *dto.Recommendation
	}
	f.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, f); err != nil {
		s.logger.Error("failed to update feedback", "error", err, "feedback_id", id)
		return nil, err
	}

	s.publishChanged(ctx, f, "updated")
	return f, nil
}

func (s *Service) DeleteFeedback(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete feedback", "error", err, "feedback_id", id)
		return err
	}

	s.publishChanged(ctx, f, "deleted")
	return nil
}

func (s *Service) publishChanged(ctx context.Context, f *Feedback, action string) {
	if s.bus == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EntityFeedback, f.ID, f.TenantID, action)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish feedback event", "error", err, "feedback_id", f.ID)
	}
}
