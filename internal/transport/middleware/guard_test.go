package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal/auth"
	"github.com/jobnest/jobnest/internal/transport/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("PageGuard", func() {
	var (
		guard  *middleware.PageGuard
		called bool
		next   http.Handler
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		guard = middleware.NewPageGuard(logger)
		called = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})
	})

	asUser := func(r *http.Request, role auth.Role) *http.Request {
		u := &auth.User{ID: "u1", TenantID: "t-acme", Role: role, IsActive: true}
		return r.WithContext(auth.ContextWithUser(r.Context(), u))
	}

	Describe("Require", func() {
		Context("without a signed-in user", func() {
			It("redirects to login with the path in returnUrl", func() {
				req := httptest.NewRequest(http.MethodGet, "/jobs/42", nil)
				rec := httptest.NewRecorder()

				guard.Require(auth.PermViewJobs)(next).ServeHTTP(rec, req)

				Expect(called).To(BeFalse())
				Expect(rec.Code).To(Equal(http.StatusFound))
				Expect(rec.Header().Get("Location")).To(Equal("/login?returnUrl=%2Fjobs%2F42"))
			})

			It("preserves the query string", func() {
				req := httptest.NewRequest(http.MethodGet, "/jobs?status=open", nil)
				rec := httptest.NewRecorder()

				guard.Require(auth.PermViewJobs)(next).ServeHTTP(rec, req)

				Expect(rec.Header().Get("Location")).To(Equal("/login?returnUrl=%2Fjobs%3Fstatus%3Dopen"))
			})
		})

		Context("with a user lacking the permission", func() {
			It("redirects to the unauthorized page", func() {
				req := asUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil), auth.RoleCandidate)
				rec := httptest.NewRecorder()

				guard.Require(auth.PermViewAnalytics)(next).ServeHTTP(rec, req)

				Expect(called).To(BeFalse())
				Expect(rec.Code).To(Equal(http.StatusFound))
				Expect(rec.Header().Get("Location")).To(Equal("/unauthorized"))
			})
		})

		Context("with a user holding the permission", func() {
			It("passes the request through", func() {
				req := asUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil), auth.RoleManager)
				rec := httptest.NewRecorder()

				guard.Require(auth.PermViewAnalytics)(next).ServeHTTP(rec, req)

				Expect(called).To(BeTrue())
				Expect(rec.Code).To(Equal(http.StatusOK))
			})
		})
	})

	Describe("RequireSession", func() {
		It("redirects anonymous visitors to login", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			guard.RequireSession()(next).ServeHTTP(rec, req)

			Expect(called).To(BeFalse())
			Expect(rec.Header().Get("Location")).To(Equal("/login?returnUrl=%2F"))
		})

		It("lets any signed-in user through regardless of role", func() {
			req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), auth.RoleCandidate)
			rec := httptest.NewRecorder()

			guard.RequireSession()(next).ServeHTTP(rec, req)

			Expect(called).To(BeTrue())
		})
	})
})
