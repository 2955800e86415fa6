package tenant

import (
	"context"
	"time"
)

// Plan is the subscription tier of a tenant.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

// Tenant is an isolated organizational account. It lives in the shared
// database; all recruiting data lives in the tenant's own partition.
type Tenant struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Subdomain    string    `json:"subdomain" gorm:"uniqueIndex;not null"`
	CustomDomain *string   `json:"custom_domain,omitempty" gorm:"uniqueIndex"`
	Plan         string    `json:"plan" gorm:"default:free"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// Repository is the shared-database lookup surface used by the resolver
// and the tenant service.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	GetByCustomDomain(ctx context.Context, domain string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) error
	Update(ctx context.Context, t *Tenant) error
}

type ctxKey string

const (
	contextTenantKey   ctxKey = "tenant"
	contextTenantIDKey ctxKey = "tenantID"
)

func ContextWithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, contextTenantKey, t)
}

// ContextWithTenantID attaches only the tenant identity. API requests carry
// the binding in the session token, so no resolved Tenant record exists.
func ContextWithTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextTenantIDKey, id)
}

// FromContext returns the tenant resolved for the current request, if any.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(contextTenantKey).(*Tenant)
	return t, ok && t != nil
}

// IDFromContext returns the tenant id scoping the current request, or ""
// when it has no tenant context. A hostname-resolved tenant wins over the
// token binding.
func IDFromContext(ctx context.Context) string {
	if t, ok := FromContext(ctx); ok {
		return t.ID
	}
	if id, ok := ctx.Value(contextTenantIDKey).(string); ok {
		return id
	}
	return ""
}
