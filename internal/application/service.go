package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/tenant"
)

// Repository defines the data access methods for applications.
type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter ListApplicationsFilter) ([]*Application, error)
	Update(ctx context.Context, a *Application) error
	Delete(ctx context.Context, id string) error
}

// JobChecker verifies the posting an application targets. Only open jobs
// accept applications.
type JobChecker interface {
	IsOpen(ctx context.Context, jobID string) (bool, error)
}

type Service struct {
	repo   Repository
	jobs   JobChecker
	bus    *events.EventBus
	views  *cache.Views
	logger *slog.Logger
}

func NewService(repo Repository, jobs JobChecker, bus *events.EventBus, views *cache.Views, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		jobs:   jobs,
		bus:    bus,
		views:  views,
		logger: logger,
	}
}

// CreateApplication submits a candidate for an open job.
func (s *Service) CreateApplication(ctx context.Context, dto CreateApplicationDTO) (*Application, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("application validation failed", "error", err)
		return nil, err
	}

	if s.jobs != nil {
		open, err := s.jobs.IsOpen(ctx, dto.JobID)
		if err != nil {
			return nil, err
		}
		if !open {
			return nil, newJobClosedError()
		}
	}

	now := time.Now()
	a := &Application{
		ID:          uuid.NewString(),
		CandidateID: dto.CandidateID,
		JobID:       dto.JobID,
		Status:      StatusApplied,
		AppliedDate: now,
		CoverLetter: dto.CoverLetter,
		Answers:     dto.Answers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create application", "error", err)
		return nil, err
	}

	s.publishChanged(ctx, a, "created")
	s.logger.Info("application submitted", "application_id", a.ID, "job_id", a.JobID, "candidate_id", a.CandidateID)
	return a, nil
}

func (s *Service) GetApplication(ctx context.Context, id string) (*Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListApplications(ctx context.Context, filter ListApplicationsFilter) ([]*Application, error) {
	cacheable := filter == ListApplicationsFilter{}
	tenantID := tenant.IDFromContext(ctx)

	if cacheable {
		var cached []*Application
		if s.views.GetList(ctx, events.EntityApplication, tenantID, &cached) {
			return cached, nil
		}
	}

	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list applications", "error", err)
		return nil, err
	}

	if cacheable {
		s.views.PutList(ctx, events.EntityApplication, tenantID, apps)
	}
	return apps, nil
}

// ListOwnApplications serves a candidate's own submissions.
func (s *Service) ListOwnApplications(ctx context.Context, candidateID string) ([]*Application, error) {
	return s.repo.List(ctx, ListApplicationsFilter{CandidateID: candidateID})
}

func (s *Service) UpdateApplication(ctx context.Context, id string, dto UpdateApplicationDTO) (*Application, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("application update validation failed", "error", err, "application_id", id)
		return nil, err
	}

	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.CoverLetter != nil {
		a.CoverLetter = *dto.CoverLetter
	}
	if dto.Answers != nil {
		a.Answers = dto.Answers
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("failed to update application", "error", err, "application_id", id)
		return nil, err
	}

	s.publishChanged(ctx, a, "updated")
	return a, nil
}

func (s *Service) DeleteApplication(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete application", "error", err, "application_id", id)
		return err
	}

	s.publishChanged(ctx, a, "deleted")
	return nil
}

func (s *Service) publishChanged(ctx context.Context, a *Application, action string) {
	if s.bus == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EntityApplication, a.ID, a.TenantID, action)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish application event", "error", err, "application_id", a.ID)
	}
}
