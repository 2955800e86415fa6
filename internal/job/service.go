package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/tenant"
)

// Repository defines the data access methods for jobs. Implementations
// carry the tenant constraint structurally, so no method takes a tenant id.
type Repository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id string) error
}

// Service handles job posting business logic
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

// CreateJob validates and persists a new posting for the current tenant.
func (s *Service) CreateJob(ctx context.Context, createdBy string, dto CreateJobDTO) (*Job, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("job validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	status := dto.Status
	if status == "" {
		status = StatusDraft
	}

	j := &Job{
		ID:               uuid.NewString(),
		Title:            dto.Title,
		Department:       dto.Department,
		Location:         dto.Location,
		Type:             dto.Type,
		Status:           status,
		Description:      dto.Description,
		Requirements:     dto.Requirements,
		Responsibilities: dto.Responsibilities,
		Salary:           dto.Salary,
		PostedDate:       dto.PostedDate,
		ClosingDate:      dto.ClosingDate,
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.Error("failed to create job", "error", err)
		return nil, err
	}

	s.publishChanged(ctx, j, "created")
	s.logger.Info("job created", "job_id", j.ID, "title", j.Title)
	return j, nil
}

func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.repo.GetByID(ctx, id)
}

// ListJobs serves unfiltered listings from the cached view when present.
func (s *Service) ListJobs(ctx context.Context, filter ListJobsFilter) ([]*Job, error) {
	cacheable := filter == ListJobsFilter{}
	tenantID := tenant.IDFromContext(ctx)

	if cacheable {
		var cached []*Job
		if s.views.GetList(ctx, events.EntityJob, tenantID, &cached) {
			return cached, nil
		}
	}

	jobs, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list jobs", "error", err)
		return nil, err
	}

	if cacheable {
		s.views.PutList(ctx, events.EntityJob, tenantID, jobs)
	}
	return jobs, nil
}

// UpdateJob applies a partial patch. Not-found and validation failures are
// reported as distinct errors.
func (s *Service) UpdateJob(ctx context.Context, id string, dto UpdateJobDTO) (*Job, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("job update validation failed", "error", err, "job_id", id)
		return nil, err
	}

	if dto.Title != nil {
		j.Title = *dto.Title
	}
	if dto.Department != nil {
		j.Department = *dto.Department
	}
	if dto.Location != nil {
		j.Location = *dto.Location
	}
	if dto.Type != nil {
		j.Type = *dto.Type
	}
	if dto.Status != nil {
		j.Status = *dto.Status
	}
	if dto.Description != nil {
		j.Description = *dto.Description
	}
	if dto.Requirements != nil {
		j.Requirements = dto.Requirements
	}
	if dto.Responsibilities != nil {
		j.Responsibilities = dto.Responsibilities
	}
	if dto.Salary != nil {
		j.Salary = dto.Salary
	}
	if dto.PostedDate != nil {
		j.PostedDate = dto.PostedDate
	}
	if dto.ClosingDate != nil {
		j.ClosingDate = dto.ClosingDate
	}
	j.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, j); err != nil {
		s.logger.Error("failed to update job", "error", err, "job_id", id)
		return nil, err
	}

	s.publishChanged(ctx, j, "updated")
	return j, nil
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete job", "error", err, "job_id", id)
		return err
	}

	s.publishChanged(ctx, j, "deleted")
	s.logger.Info("job deleted", "job_id", id)
	return nil
}

func (s *Service) publishChanged(ctx context.Context, j *Job, action string) {
	if s.bus == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EntityJob, j.ID, j.TenantID, action)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish job event", "error", err, "job_id", j.ID)
	}
}
