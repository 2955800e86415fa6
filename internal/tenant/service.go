package tenant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/core/events"
)

// Provisioner prepares the physical partition backing a new tenant.
type Provisioner interface {
	EnsureTenantDatabase(ctx context.Context, tenantID string) error
}

type Service struct {
	repo        Repository
	provisioner Provisioner
	bus         *events.EventBus
	logger      *slog.Logger
}

func NewService(repo Repository, provisioner Provisioner, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		provisioner: provisioner,
		bus:         bus,
		logger:      logger,
	}
}

// CreateTenant provisions a new organization: shared-db record plus its own
// database partition.
func (s *Service) CreateTenant(ctx context.Context, dto CreateTenantDTO) (*Tenant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetBySubdomain(ctx, dto.Subdomain); err == nil {
		return nil, internal.NewConflictError("Subdomain is already in use", internal.ErrCodeSubdomainTaken)
	}
	if dto.CustomDomain != nil && *dto.CustomDomain != "" {
		if _, err := s.repo.GetByCustomDomain(ctx, *dto.CustomDomain); err == nil {
			return nil, internal.NewConflictError("Custom domain is already in use", internal.ErrCodeCustomDomainTaken)
		}
	}

	plan := dto.Plan
	if plan == "" {
		plan = PlanFree
	}

	now := time.Now()
	t := &Tenant{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Subdomain:    dto.Subdomain,
		CustomDomain: dto.CustomDomain,
		Plan:         plan,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create tenant", "subdomain", dto.Subdomain, "error", err)
		return nil, internal.NewInternalError("Failed to create tenant", err)
	}

	if err := s.provisioner.EnsureTenantDatabase(ctx, t.ID); err != nil {
		s.logger.Error("failed to provision tenant database", "tenant_id", t.ID, "error", err)
		return nil, internal.NewInternalError("Failed to provision tenant storage", err)
	}

	s.publishChanged(ctx, t.ID, "created")
	s.logger.Info("tenant created", "tenant_id", t.ID, "subdomain", t.Subdomain, "plan", t.Plan)
	return t, nil
}

// Update applies a partial settings patch to the given tenant.
func (s *Service) Update(ctx context.Context, t *Tenant, dto UpdateTenantDTO) (*Tenant, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Subdomain != nil && *dto.Subdomain != t.Subdomain {
		if existing, err := s.repo.GetBySubdomain(ctx, *dto.Subdomain); err == nil && existing.ID != t.ID {
			return nil, internal.NewConflictError("Subdomain is already in use", internal.ErrCodeSubdomainTaken)
		}
		t.Subdomain = *dto.Subdomain
	}
	if dto.CustomDomain != nil {
		if *dto.CustomDomain != "" {
			if existing, err := s.repo.GetByCustomDomain(ctx, *dto.CustomDomain); err == nil && existing.ID != t.ID {
				return nil, internal.NewConflictError("Custom domain is already in use", internal.ErrCodeCustomDomainTaken)
			}
			t.CustomDomain = dto.CustomDomain
		} else {
			t.CustomDomain = nil
		}
	}
	if dto.Name != nil {
		t.Name = *dto.Name
	}
	if dto.Plan != nil {
		t.Plan = *dto.Plan
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("failed to update tenant", "tenant_id", t.ID, "error", err)
		return nil, internal.NewInternalError("Failed to update tenant", err)
	}

	s.publishChanged(ctx, t.ID, "updated")
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) publishChanged(ctx context.Context, tenantID, action string) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, events.NewEntityChangedEvent(events.EntityTenant, tenantID, tenantID, action))
}
