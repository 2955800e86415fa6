package tenantdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/tenant"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Opener dials the database partition belonging to one tenant. Swappable so
// specs can back scopes with in-memory sqlite.
type Opener func(tenantID string) (*gorm.DB, error)

// Manager hands out tenant-bound scopes. Connections are cached per tenant
// id and reused across requests within the process.
type Manager struct {
	shared *gorm.DB
	cfg    internal.TenancyConfig
	logger *slog.Logger
	models []interface{}
	open   Opener

	mu    sync.RWMutex
	conns map[string]*gorm.DB
}

// NewManager creates a manager that derives each tenant's database name by
// suffixing the tenant id onto the configured base name. The shared handle
// is only used to provision new tenant databases. The given models are
// auto-migrated the first time a tenant partition is opened.
func NewManager(shared *gorm.DB, dsn string, cfg internal.TenancyConfig, logger *slog.Logger, models ...interface{}) *Manager {
	m := &Manager{
		shared: shared,
		cfg:    cfg,
		logger: logger,
		models: models,
		conns:  make(map[string]*gorm.DB),
	}
	m.open = func(tenantID string) (*gorm.DB, error) {
		tenantDSN, err := tenantDSN(dsn, cfg.BaseDBName, tenantID)
		if err != nil {
			return nil, err
		}
		return gorm.Open(postgres.Open(tenantDSN), &gorm.Config{})
	}
	return m
}

// NewManagerWithOpener is the test seam: scopes are backed by whatever the
// opener returns instead of per-tenant postgres databases.
func NewManagerWithOpener(open Opener, logger *slog.Logger, models ...interface{}) *Manager {
	return &Manager{
		logger: logger,
		models: models,
		open:   open,
		conns:  make(map[string]*gorm.DB),
	}
}

// Scope returns a data-access handle bound to the tenant resolved for this
// request. Domain repositories can only reach storage through a Scope, so a
// request without tenant context cannot touch any partition.
func (m *Manager) Scope(ctx context.Context) (*Scope, error) {
	tenantID := tenant.IDFromContext(ctx)
	if tenantID == "" {
		return nil, internal.ErrNoTenantContext
	}
	return m.ScopeFor(ctx, tenantID)
}

// ScopeFor returns a handle bound to an explicit tenant id. Used by the
// seeder and provisioning paths that run outside a request.
func (m *Manager) ScopeFor(ctx context.Context, tenantID string) (*Scope, error) {
	db, err := m.conn(tenantID)
	if err != nil {
		return nil, err
	}
	return &Scope{db: db.WithContext(ctx), tenantID: tenantID}, nil
}

func (m *Manager) conn(tenantID string) (*gorm.DB, error) {
	m.mu.RLock()
	db, ok := m.conns[tenantID]
	m.mu.RUnlock()
	if ok {
		return db, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if db, ok := m.conns[tenantID]; ok {
		return db, nil
	}

	db, err := m.open(tenantID)
	if err != nil {
		return nil, internal.NewInternalError("Failed to open tenant database", err)
	}
	if err := db.AutoMigrate(m.models...); err != nil {
		return nil, internal.NewInternalError("Failed to migrate tenant database", err)
	}

	m.conns[tenantID] = db
	m.logger.Info("tenant database opened", "tenant_id", tenantID)
	return db, nil
}

// EnsureTenantDatabase creates the tenant's database if it does not exist.
// Postgres has no CREATE DATABASE IF NOT EXISTS, hence the catalog probe.
func (m *Manager) EnsureTenantDatabase(ctx context.Context, tenantID string) error {
	if m.shared == nil {
		// opener-backed managers (tests) create partitions lazily
		return nil
	}

	name := fmt.Sprintf("%s_%s", m.cfg.BaseDBName, tenantID)

	var count int64
	if err := m.shared.WithContext(ctx).
		Raw("SELECT count(*) FROM pg_database WHERE datname = ?", name).
		Scan(&count).Error; err != nil {
		return internal.NewInternalError("Failed to check tenant database", err)
	}
	if count > 0 {
		return nil
	}

	if err := m.shared.WithContext(ctx).Exec(fmt.Sprintf(`CREATE DATABASE %q`, name)).Error; err != nil {
		return internal.NewInternalError("Failed to create tenant database", err)
	}
	m.logger.Info("tenant database created", "tenant_id", tenantID, "database", name)
	return nil
}

// Close releases every cached tenant connection.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tenantID, db := range m.conns {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				m.logger.Error("failed to close tenant database", "tenant_id", tenantID, "error", err)
			}
		}
	}
	m.conns = make(map[string]*gorm.DB)
}

func tenantDSN(dsn, baseDB, tenantID string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database source: %w", err)
	}
	u.Path = "/" + baseDB + "_" + tenantID
	return u.String(), nil
}
