package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jobnest/jobnest/internal/application"
	"github.com/jobnest/jobnest/internal/auth"
	"github.com/jobnest/jobnest/internal/candidate"
	"github.com/jobnest/jobnest/internal/dashboard"
	"github.com/jobnest/jobnest/internal/feedback"
	"github.com/jobnest/jobnest/internal/interview"
	"github.com/jobnest/jobnest/internal/job"
	"github.com/jobnest/jobnest/internal/tenant"
	"github.com/jobnest/jobnest/internal/transport/middleware"
	"github.com/jobnest/jobnest/internal/transport/swagger"
	"github.com/jobnest/jobnest/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Tenant      *tenant.Handler
	Auth        *auth.Handler
	User        *user.Handler
	Job         *job.Handler
	Candidate   *candidate.Handler
	Application *application.Handler
	Interview   *interview.Handler
	Feedback    *feedback.Handler
	Dashboard   *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cachePinger Pinger, resolver *tenant.Resolver, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, cachePinger)
	rbac := auth.NewRBACAuthorization(logger)
	guard := middleware.NewPageGuard(logger)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())
	router.Get("/healthz", healthHandler.pingHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Workspace signup and current-tenant lookup ride on the cookie,
		// not the hostname, so the resolver middleware is not applied here.
		r.Post("/tenants", h.Tenant.CreateTenant)
		r.Get("/tenant", h.Tenant.GetCurrentTenant)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.With(rbac.Require(auth.PermManageSettings)).Put("/tenant", h.Tenant.UpdateCurrentTenant)

			pr.Get("/users/me", h.User.GetCurrentUser)
			pr.Route("/users", func(ur chi.Router) {
				ur.With(rbac.RequireAny(auth.PermManageUsers, auth.PermViewTeam)).Get("/", h.User.ListTeam)
				ur.With(rbac.RequireAny(auth.PermManageUsers, auth.PermAssignRoles)).Patch("/{id}/role", h.User.ChangeRole)
				ur.With(rbac.Require(auth.PermManageUsers)).Delete("/{id}", h.User.Deactivate)
			})

			pr.Route("/jobs", func(jr chi.Router) {
				jr.With(rbac.RequireAny(auth.PermViewJobs, auth.PermManageJobs)).Get("/", h.Job.ListJobs)
				jr.With(rbac.RequireAny(auth.PermViewJobs, auth.PermManageJobs)).Get("/{id}", h.Job.GetJob)
				jr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermManageJobs))
					mr.Post("/", h.Job.CreateJob)
					mr.Patch("/{id}", h.Job.UpdateJob)
					mr.Delete("/{id}", h.Job.DeleteJob)
				})
			})

			pr.Route("/candidates", func(cr chi.Router) {
				cr.With(rbac.Require(auth.PermViewOwnProfile)).Get("/me", h.Candidate.GetOwnProfile)
				cr.With(rbac.RequireAny(auth.PermViewCands, auth.PermManageCands)).Get("/", h.Candidate.ListCandidates)
				cr.With(rbac.RequireAny(auth.PermViewCands, auth.PermManageCands)).Get("/{id}", h.Candidate.GetCandidate)
				cr.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermManageCands))
					mr.Post("/", h.Candidate.CreateCandidate)
					mr.Patch("/{id}", h.Candidate.UpdateCandidate)
					mr.Delete("/{id}", h.Candidate.DeleteCandidate)
				})
			})

			pr.Route("/applications", func(ar chi.Router) {
				ar.With(rbac.Require(auth.PermViewOwnApps)).Get("/me", h.Application.ListOwnApplications)
				ar.With(rbac.RequireAny(auth.PermApplyJobs, auth.PermManageCands)).Post("/", h.Application.CreateApplication)
				ar.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermManageCands))
					mr.Get("/", h.Application.ListApplications)
					mr.Get("/{id}", h.Application.GetApplication)
					mr.Patch("/{id}", h.Application.UpdateApplication)
					mr.Delete("/{id}", h.Application.DeleteApplication)
				})
			})

			pr.Route("/interviews", func(ir chi.Router) {
				ir.With(rbac.Require(auth.PermManageAssigned)).Get("/assigned", h.Interview.ListAssigned)
				ir.With(rbac.RequireAny(auth.PermManageAssigned, auth.PermManageIntvws)).Post("/{id}/feedback", h.Interview.SubmitFeedback)
				ir.Group(func(mr chi.Router) {
					mr.Use(rbac.Require(auth.PermManageIntvws))
					mr.Post("/", h.Interview.ScheduleInterview)
					mr.Get("/", h.Interview.ListInterviews)
					mr.Get("/{id}", h.Interview.GetInterview)
					mr.Patch("/{id}", h.Interview.UpdateInterview)
					mr.Post("/{id}/cancel", h.Interview.CancelInterview)
					mr.Delete("/{id}", h.Interview.DeleteInterview)
				})
			})

			pr.Route("/feedback", func(fr chi.Router) {
				fr.Use(rbac.RequireAny(auth.PermManageCands, auth.PermManageIntvws, auth.PermManageAssigned))
				fr.Post("/", h.Feedback.CreateFeedback)
				fr.Get("/", h.Feedback.ListFeedback)
				fr.Get("/{id}", h.Feedback.GetFeedback)
				fr.Patch("/{id}", h.Feedback.UpdateFeedback)
				fr.Delete("/{id}", h.Feedback.DeleteFeedback)
			})

			pr.With(rbac.Require(auth.PermViewAnalytics)).Get("/dashboard/stats", h.Dashboard.GetStats)
		})
	})

	// Browser-facing routes resolve the tenant from the hostname and use
	// redirecting guards instead of JSON errors.
	router.Group(func(pg chi.Router) {
		pg.Use(resolver.Middleware)
		pg.Use(h.Auth.OptionalAuthMiddleware)

		pg.Get("/login", servePage("login"))
		pg.Get("/unauthorized", servePage("unauthorized"))

		pg.With(guard.Require(auth.PermViewJobs)).Get("/jobs/{id}", servePage("job"))
		pg.With(guard.Require(auth.PermViewAnalytics)).Get("/dashboard", servePage("dashboard"))
		pg.With(guard.RequireSession()).Get("/", servePage("home"))
	})
}

// servePage is a placeholder for the client bundle: the API is consumed by
// a separately deployed frontend, so page routes only need to exist for the
// guard contract to apply.
func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<!doctype html><title>" + name + "</title>"))
	}
}
