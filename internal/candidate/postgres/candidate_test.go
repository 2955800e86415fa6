package postgres_test

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
	"github.com/jobnest/jobnest/internal/candidate"
	"github.com/jobnest/jobnest/internal/candidate/postgres"
	"github.com/jobnest/jobnest/internal/tenant"
	"github.com/jobnest/jobnest/internal/tenantdb"
)

func TestCandidateRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Candidate Repository Suite")
}

var _ = Describe("CandidateRepository", func() {
	var (
		db   *gorm.DB
		repo candidate.Repository
		ctx  context.Context
	)

	newCandidate := func(email string) *candidate.Candidate {
		return &candidate.Candidate{
			ID:        "cand-" + email,
			FirstName: "Cleo",
			LastName:  "Jones",
			Email:     email,
			Location:  "Berlin",
			Skills:    []string{"go", "postgres"},
			Experience: []candidate.Experience{
				{Title: "Engineer", Company: "Example Corp", Current: true},
			},
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).ToNot(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mgr := tenantdb.NewManagerWithOpener(func(string) (*gorm.DB, error) {
			return db, nil
		}, logger, &candidate.Candidate{})
		repo = postgres.NewCandidateRepository(mgr)

		ctx = tenant.ContextWithTenant(context.Background(), &tenant.Tenant{ID: "t-acme"})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		sqlDB.Close()
	})

	Describe("Create and GetByID", func() {
		It("round-trips a profile including serialized fields", func() {
			c := newCandidate("cleo@example.test")
			Expect(repo.Create(ctx, c)).To(Succeed())

			loaded, err := repo.GetByID(ctx, c.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.TenantID).To(Equal("t-acme"))
			Expect(loaded.FullName()).To(Equal("Cleo Jones"))
			Expect(loaded.Skills).To(ConsistOf("go", "postgres"))
			Expect(loaded.Experience).To(HaveLen(1))
			Expect(loaded.Experience[0].Company).To(Equal("Example Corp"))
		})

		It("reports not found for an unknown id", func() {
			_, err := repo.GetByID(ctx, "missing")
			Expect(err).To(MatchError(internal.ErrCandidateNotFound))
		})

		It("refuses to operate without tenant context", func() {
			err := repo.Create(context.Background(), newCandidate("cleo@example.test"))
			Expect(err).To(MatchError(internal.ErrNoTenantContext))
		})
	})

	Describe("email uniqueness", func() {
		It("rejects a duplicate email within the tenant as a conflict", func() {
			Expect(repo.Create(ctx, newCandidate("cleo@example.test"))).To(Succeed())

			dup := newCandidate("cleo@example.test")
			dup.ID = "cand-dup"
			err := repo.Create(ctx, dup)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmailTaken))
		})

		It("allows the same email under a different tenant", func() {
			Expect(repo.Create(ctx, newCandidate("cleo@example.test"))).To(Succeed())

			otherCtx := tenant.ContextWithTenant(context.Background(), &tenant.Tenant{ID: "t-globex"})
			dup := newCandidate("cleo@example.test")
			dup.ID = "cand-globex"
			Expect(repo.Create(otherCtx, dup)).To(Succeed())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			a := newCandidate("a@example.test")
			Expect(repo.Create(ctx, a)).To(Succeed())

			b := newCandidate("b@example.test")
			b.ID = "cand-b"
			b.Location = "Lisbon"
			b.Skills = []string{"rust"}
			Expect(repo.Create(ctx, b)).To(Succeed())
		})

		It("narrows by location", func() {
			got, err := repo.List(ctx, candidate.ListCandidatesFilter{Location: "Lisbon"})
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Email).To(Equal("b@example.test"))
		})

		It("narrows by skill substring", func() {
			got, err := repo.List(ctx, candidate.ListCandidatesFilter{Skill: "go"})
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Email).To(Equal("a@example.test"))
		})

		It("never returns another tenant's rows", func() {
			otherCtx := tenant.ContextWithTenant(context.Background(), &tenant.Tenant{ID: "t-globex"})
			got, err := repo.List(otherCtx, candidate.ListCandidatesFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("removes the profile", func() {
			c := newCandidate("cleo@example.test")
			Expect(repo.Create(ctx, c)).To(Succeed())

			Expect(repo.Delete(ctx, c.ID)).To(Succeed())

			_, err := repo.GetByID(ctx, c.ID)
			Expect(err).To(MatchError(internal.ErrCandidateNotFound))
		})

		It("reports not found for an unknown id", func() {
			Expect(repo.Delete(ctx, "missing")).To(MatchError(internal.ErrCandidateNotFound))
		})
	})
})
