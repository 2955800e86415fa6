package candidate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal/cache"
	"github.com/jobnest/jobnest/internal/core/events"
	"github.com/jobnest/jobnest/internal/tenant"
)

// Repository defines the data access methods for candidate profiles.
type Repository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	List(ctx context.Context, filter ListCandidatesFilter) ([]*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
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

func (s *Service) CreateCandidate(ctx context.Context, dto CreateCandidateDTO) (*Candidate, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("candidate validation failed", "error", err)
		return nil, err
	}

	now := time.Now()
	c := &Candidate{
		ID:             uuid.NewString(),
		UserID:         dto.UserID,
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Email:          dto.Email,
		Phone:          dto.Phone,
		Location:       dto.Location,
		Headline:       dto.Headline,
		Summary:        dto.Summary,
		Skills:         dto.Skills,
		Experience:     dto.Experience,
		Education:      dto.Education,
		Certifications: dto.Certifications,
		ResumeURL:      dto.ResumeURL,
		PortfolioURL:   dto.PortfolioURL,
		LinkedinURL:    dto.LinkedinURL,
		GithubURL:      dto.GithubURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create candidate", "error", err)
		return nil, err
	}

	s.publishChanged(ctx, c, "created")
	s.logger.Info("candidate created", "candidate_id", c.ID)
	return c, nil
}

func (s *Service) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

// GetOwnProfile looks up the profile linked to the signed-in user.
func (s *Service) GetOwnProfile(ctx context.Context, userID string) (*Candidate, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) ListCandidates(ctx context.Context, filter ListCandidatesFilter) ([]*Candidate, error) {
	cacheable := filter == ListCandidatesFilter{}
	tenantID := tenant.IDFromContext(ctx)

	if cacheable {
		var cached []*Candidate
		if s.views.GetList(ctx, events.EntityCandidate, tenantID, &cached) {
			return cached, nil
		}
	}

	candidates, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list candidates", "error", err)
		return nil, err
	}

	if cacheable {
		s.views.PutList(ctx, events.EntityCandidate, tenantID, candidates)
	}
	return candidates, nil
}

func (s *Service) UpdateCandidate(ctx context.Context, id string, dto UpdateCandidateDTO) (*Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		s.logger.Warn("candidate update validation failed", "error", err, "candidate_id", id)
		return nil, err
	}

	if dto.FirstName != nil {
		c.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		c.LastName = *dto.LastName
	}
	if dto.Email != nil {
		c.Email = *dto.Email
	}
	if dto.Phone != nil {
		c.Phone = *dto.Phone
	}
	if dto.Location != nil {
		c.Location = *dto.Location
	}
	if dto.Headline != nil {
		c.Headline = *dto.Headline
	}
	if dto.Summary != nil {
		c.Summary = *dto.Summary
	}
	if dto.Skills != nil {
		c.Skills = dto.Skills
	}
	if dto.Experience != nil {
		c.Experience = dto.Experience
	}
	if dto.Education != nil {
		c.Education = dto.Education
	}
	if dto.Certifications != nil {
		c.Certifications = dto.Certifications
	}
	if dto.ResumeURL != nil {
		c.ResumeURL = *dto.ResumeURL
	}
	if dto.PortfolioURL != nil {
		c.PortfolioURL = *dto.PortfolioURL
	}
	if dto.LinkedinURL != nil {
		c.LinkedinURL = *dto.LinkedinURL
	}
	if dto.GithubURL != nil {
		c.GithubURL = *dto.GithubURL
	}
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update candidate", "error", err, "candidate_id", id)
		return nil, err
	}

	s.publishChanged(ctx, c, "updated")
	return c, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete candidate", "error", err, "candidate_id", id)
		return err
	}

	s.publishChanged(ctx, c, "deleted")
	s.logger.Info("candidate deleted", "candidate_id", id)
	return nil
}

func (s *Service) publishChanged(ctx context.Context, c *Candidate, action string) {
	if s.bus == nil {
		return
	}
	event := events.NewEntityChangedEvent(events.EntityCandidate, c.ID, c.TenantID, action)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish candidate event", "error", err, "candidate_id", c.ID)
	}
}
