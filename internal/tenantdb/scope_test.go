package tenantdb_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/tenant"
	"github.com/jobnest/jobnest/internal/tenantdb"
)

func TestTenantDB(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TenantDB Suite")
}

type note struct {
	ID       string `gorm:"primaryKey"`
	TenantID string `gorm:"index"`
	Body     string
}

func (n *note) SetTenantID(tenantID string) { n.TenantID = tenantID }
func (n *note) GetTenantID() string         { return n.TenantID }

var _ = Describe("Scope", func() {
	var (
		db      *gorm.DB
		manager *tenantdb.Manager
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).ToNot(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		// every tenant shares one in-memory database so the spec can observe
		// what the tenant_id constraint alone prevents
		manager = tenantdb.NewManagerWithOpener(func(string) (*gorm.DB, error) {
			return db, nil
		}, logger, &note{})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		sqlDB.Close()
	})

	Context("when two tenants write to their scopes", func() {
		It("keeps each tenant's rows invisible to the other", func() {
			scopeA, err := manager.ScopeFor(context.Background(), "tenant-a")
			Expect(err).ToNot(HaveOccurred())
			scopeB, err := manager.ScopeFor(context.Background(), "tenant-b")
			Expect(err).ToNot(HaveOccurred())

			Expect(scopeA.Create(&note{ID: "n1", Body: "for a"})).To(Succeed())
			Expect(scopeB.Create(&note{ID: "n2", Body: "for b"})).To(Succeed())

			var fromA []note
			Expect(scopeA.Query(&note{}).Find(&fromA).Error).ToNot(HaveOccurred())
			Expect(fromA).To(HaveLen(1))
			Expect(fromA[0].ID).To(Equal("n1"))
			Expect(fromA[0].TenantID).To(Equal("tenant-a"))

			var fromB []note
			Expect(scopeB.Query(&note{}).Find(&fromB).Error).ToNot(HaveOccurred())
			Expect(fromB).To(HaveLen(1))
			Expect(fromB[0].ID).To(Equal("n2"))
		})

		It("stamps the scope's tenant id even when the record claims another", func() {
			scope, err := manager.ScopeFor(context.Background(), "tenant-a")
			Expect(err).ToNot(HaveOccurred())

			rec := &note{ID: "n1", TenantID: "tenant-b", Body: "smuggled"}
			Expect(scope.Create(rec)).To(Succeed())
			Expect(rec.TenantID).To(Equal("tenant-a"))
		})
	})

	Context("when saving a record from another tenant", func() {
		It("rejects the write", func() {
			scopeA, err := manager.ScopeFor(context.Background(), "tenant-a")
			Expect(err).ToNot(HaveOccurred())
			scopeB, err := manager.ScopeFor(context.Background(), "tenant-b")
			Expect(err).ToNot(HaveOccurred())

			rec := &note{ID: "n1", Body: "original"}
			Expect(scopeA.Create(rec)).To(Succeed())

			rec.Body = "tampered"
			err = scopeB.Save(rec)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})
	})

	Context("when no tenant is present in the context", func() {
		It("refuses to hand out a scope", func() {
			_, err := manager.Scope(context.Background())
			Expect(err).To(MatchError(internal.ErrNoTenantContext))
		})

		It("binds the scope to the context tenant when present", func() {
			ctx := tenant.ContextWithTenant(context.Background(), &tenant.Tenant{ID: "tenant-a"})
			scope, err := manager.Scope(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(scope.TenantID()).To(Equal("tenant-a"))
		})
	})
})
