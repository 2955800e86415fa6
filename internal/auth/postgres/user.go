package postgres

import (
	"context"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/auth"
	"gorm.io/gorm"
)

// UserRepository implements auth.UserRepository against the shared database.
// Users are keyed per tenant; email uniqueness holds within a tenant only.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, tenantID, email string) (*auth.User, error) {
	var u auth.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("Failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*auth.User, error) {
	var u auth.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("Failed to load user", err)
	}
	return &u, nil
}

func (r *UserRepository) ListByTenant(ctx context.Context, tenantID string) ([]*auth.User, error) {
	var users []*auth.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, internal.NewInternalError("Failed to list users", err)
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
