package tenantdb

import (
	"github.com/jobnest/jobnest/internal"
	"gorm.io/gorm"
)

// Record is any tenant-scoped entity. Scopes stamp and verify the tenant id
// so call sites cannot forget the constraint.
type Record interface {
	SetTenantID(tenantID string)
	GetTenantID() string
}

// Scope is a data-access handle parameterized by tenant identity at
// construction. Every query it produces is constrained to that tenant, and
// every record it persists is stamped with it.
type Scope struct {
	db       *gorm.DB
	tenantID string
}

func (s *Scope) TenantID() string {
	return s.tenantID
}

// Create stamps the record with the scope's tenant id and persists it.
func (s *Scope) Create(rec Record) error {
	rec.SetTenantID(s.tenantID)
	return s.db.Create(rec).Error
}

// Save rejects records carrying a different tenant id rather than silently
// rewriting them.
func (s *Scope) Save(rec Record) error {
	if rec.GetTenantID() != s.tenantID {
		return internal.ErrUnauthorizedAccess
	}
	return s.db.Save(rec).Error
}

// Query returns a gorm builder for the model already constrained to the
// scope's tenant partition.
func (s *Scope) Query(model interface{}) *gorm.DB {
	return s.db.Model(model).Where("tenant_id = ?", s.tenantID)
}
