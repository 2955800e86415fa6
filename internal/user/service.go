package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/auth"
)

// Service covers tenant-local user administration. All operations are
// constrained to the caller's tenant.
type Service struct {
	userRepo auth.UserRepository
	logger   *slog.Logger
}

func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{userRepo: userRepo, logger: logger}
}

func (s *Service) ListTeam(ctx context.Context, tenantID string) ([]*auth.User, error) {
	users, err := s.userRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("failed to list users", "tenant_id", tenantID, "error", err)
		return nil, err
	}
	for _, u := range users {
		u.Permissions = auth.PermissionsForRole(u.Role)
	}
	return users, nil
}

// ChangeRole reassigns a user's role within the caller's tenant. The target
// must belong to the same tenant; anything else reads as not-found.
func (s *Service) ChangeRole(ctx context.Context, tenantID, userID string, dto auth.ChangeRoleDTO) (*auth.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.TenantID != tenantID {
		return nil, internal.ErrUserNotFound
	}

	role, _ := auth.ParseRole(dto.Role)
	target.Role = role
	target.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, target); err != nil {
		s.logger.Error("failed to change role", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("Failed to update user", err)
	}

	target.Permissions = auth.PermissionsForRole(target.Role)
	s.logger.Info("user role changed", "user_id", userID, "tenant_id", tenantID, "role", role)
	return target, nil
}

// Deactivate disables a user account without deleting it.
func (s *Service) Deactivate(ctx context.Context, tenantID, userID string) error {
	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.TenantID != tenantID {
		return internal.ErrUserNotFound
	}

	target.IsActive = false
	target.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, target); err != nil {
		return internal.NewInternalError("Failed to update user", err)
	}
	s.logger.Info("user deactivated", "user_id", userID, "tenant_id", tenantID)
	return nil
}
