package postgres

import (
	"context"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/tenant"
	"gorm.io/gorm"
)

// TenantRepository implements tenant.Repository against the shared database.
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) tenant.Repository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTenantNotFound
		}
		return nil, internal.NewInternalError("Failed to load tenant", err)
	}
	return &t, nil
}

func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTenantNotFound
		}
		return nil, internal.NewInternalError("Failed to load tenant", err)
	}
	return &t, nil
}

func (r *TenantRepository) GetByCustomDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.WithContext(ctx).Where("custom_domain = ?", domain).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTenantNotFound
		}
		return nil, internal.NewInternalError("Failed to load tenant", err)
	}
	return &t, nil
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}
