package rest_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/auth"
	"github.com/jobnest/jobnest/internal/job"
	jobpg "github.com/jobnest/jobnest/internal/job/postgres"
	"github.com/jobnest/jobnest/internal/tenant"
	"github.com/jobnest/jobnest/internal/tenantdb"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rest Suite")
}

// Fixed-set repository backing the auth middleware.
type staticUserRepository struct {
	users map[string]*auth.User
}

func (s *staticUserRepository) GetByEmail(_ context.Context, tenantID, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.TenantID == tenantID && u.Email == email {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (s *staticUserRepository) GetByID(_ context.Context, id string) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (s *staticUserRepository) ListByTenant(_ context.Context, tenantID string) ([]*auth.User, error) {
	var out []*auth.User
	for _, u := range s.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *staticUserRepository) Create(_ context.Context, u *auth.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *staticUserRepository) Update(_ context.Context, u *auth.User) error {
	s.users[u.ID] = u
	return nil
}

// The unit suites mock repositories or hand-build scopes, so this spec
// drives a handler through the same middleware chain the router mounts:
// token -> principal -> tenant binding -> RBAC -> tenant-scoped storage.
var _ = Describe("API middleware chain", func() {
	var (
		db       *gorm.DB
		router   *chi.Mux
		tokens   *auth.JWTTokenGenerator
		acmeUser *auth.User
		otherMgr *auth.User
		cand     *auth.User
	)

	tokenFor := func(u *auth.User) string {
		token, err := tokens.GenerateAccessToken(u)
		Expect(err).ToNot(HaveOccurred())
		return token
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).ToNot(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		acmeUser = &auth.User{ID: "u-acme", TenantID: "t-acme", Name: "Mori", Email: "manager@acme.test", Role: auth.RoleManager, IsActive: true}
		otherMgr = &auth.User{ID: "u-globex", TenantID: "t-globex", Name: "Gwen", Email: "manager@globex.test", Role: auth.RoleManager, IsActive: true}
		cand = &auth.User{ID: "u-cand", TenantID: "t-acme", Name: "Cleo", Email: "cand@acme.test", Role: auth.RoleCandidate, IsActive: true}
		userRepo := &staticUserRepository{users: map[string]*auth.User{
			acmeUser.ID: acmeUser,
			otherMgr.ID: otherMgr,
			cand.ID:     cand,
		}}

		tokens = auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
		authService := auth.NewService(userRepo, tokens, 0, logger)
		authHandler := auth.NewHandler(authService, nil, "development")
		rbac := auth.NewRBACAuthorization(logger)

		// every tenant shares one in-memory database; isolation comes from
		// the scope's tenant_id constraint
		manager := tenantdb.NewManagerWithOpener(func(string) (*gorm.DB, error) {
			return db, nil
		}, logger, &job.Job{})
		jobService := job.NewService(jobpg.NewJobRepository(manager), nil, nil, logger)
		jobHandler := job.NewHandler(jobService)

		seedCtx := tenant.ContextWithTenant(context.Background(), &tenant.Tenant{ID: "t-acme"})
		_, err = jobService.CreateJob(seedCtx, acmeUser.ID, job.CreateJobDTO{
			Title:       "Backend Engineer",
			Department:  "Engineering",
			Location:    "Remote",
			Status:      job.StatusOpen,
			Description: "Build and operate the hiring platform services.",
		})
		Expect(err).ToNot(HaveOccurred())

		router = chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(authHandler.AuthMiddleware)
			r.With(rbac.RequireAny(auth.PermViewJobs, auth.PermManageJobs)).Get("/api/v1/jobs", jobHandler.ListJobs)
			r.With(rbac.Require(auth.PermManageJobs)).Post("/api/v1/jobs", jobHandler.CreateJob)
		})
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).ToNot(HaveOccurred())
		sqlDB.Close()
	})

	It("serves the caller's tenant data from the token binding alone", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(acmeUser))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var jobs []*job.Job
		Expect(json.Unmarshal(rec.Body.Bytes(), &jobs)).To(Succeed())
		Expect(jobs).To(HaveLen(1))
		Expect(jobs[0].Title).To(Equal("Backend Engineer"))
		Expect(jobs[0].TenantID).To(Equal("t-acme"))
	})

	It("keeps another tenant's caller away from the data", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(otherMgr))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var jobs []*job.Job
		Expect(json.Unmarshal(rec.Body.Bytes(), &jobs)).To(Succeed())
		Expect(jobs).To(BeEmpty())
	})

	It("stamps writes with the caller's tenant", func() {
		body := `{"title":"Designer","department":"Design","location":"Remote","description":"Own product design end to end.","status":"open"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+tokenFor(otherMgr))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created job.Job
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.TenantID).To(Equal("t-globex"))
		Expect(created.CreatedBy).To(Equal(otherMgr.ID))
	})

	It("rejects requests without a token", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects callers whose role lacks the route permission", func() {
		// candidates may view jobs but not create them
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer "+tokenFor(cand))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})
})
