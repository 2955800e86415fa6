package application_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jobnest/jobnest/internal"
	"github.com/jobnest/jobnest/internal/application"
	"github.com/jobnest/jobnest/internal/auth"
)

func TestApplication(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Application Suite")
}

// Mock repository for testing
type mockApplicationRepository struct {
	applications map[string]*application.Application
	createError  error
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{applications: make(map[string]*application.Application)}
}

func (m *mockApplicationRepository) Create(_ context.Context, a *application.Application) error {
	if m.createError != nil {
		return m.createError
	}
	m.applications[a.ID] = a
	return nil
}

func (m *mockApplicationRepository) GetByID(_ context.Context, id string) (*application.Application, error) {
	if a, ok := m.applications[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, internal.ErrApplicationNotFound
}

func (m *mockApplicationRepository) List(_ context.Context, filter application.ListApplicationsFilter) ([]*application.Application, error) {
	var out []*application.Application
	for _, a := range m.applications {
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		if filter.CandidateID != "" && a.CandidateID != filter.CandidateID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockApplicationRepository) Update(_ context.Context, a *application.Application) error {
	m.applications[a.ID] = a
	return nil
}

func (m *mockApplicationRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.applications[id]; !ok {
		return internal.ErrApplicationNotFound
	}
	delete(m.applications, id)
	return nil
}

// openJobs answers IsOpen from a fixed set of job ids.
type openJobs map[string]bool

func (o openJobs) IsOpen(_ context.Context, jobID string) (bool, error) {
	return o[jobID], nil
}

// ownProfiles maps user ids to their candidate profile.
type ownProfiles map[string]string

func (o ownProfiles) CandidateIDForUser(_ context.Context, userID string) (string, error) {
	if id, ok := o[userID]; ok {
		return id, nil
	}
	return "", internal.ErrCandidateNotFound
}

var _ = Describe("Application Service", func() {
	var (
		repo    *mockApplicationRepository
		jobs    openJobs
		service *application.Service
	)

	BeforeEach(func() {
		repo = newMockApplicationRepository()
		jobs = openJobs{"job-open": true, "job-closed": false}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = application.NewService(repo, jobs, nil, nil, logger)
	})

	Describe("CreateApplication", func() {
		It("submits a candidate for an open job", func() {
			created, err := service.CreateApplication(context.Background(), application.CreateApplicationDTO{
				CandidateID: "cand-1",
				JobID:       "job-open",
				CoverLetter: "I would like to apply.",
				Answers:     map[string]string{"visa": "not required"},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(Equal(application.StatusApplied))
			Expect(created.AppliedDate).ToNot(BeZero())
			Expect(created.Answers).To(HaveKeyWithValue("visa", "not required"))
		})

		It("rejects applications to a job that is not open", func() {
			_, err := service.CreateApplication(context.Background(), application.CreateApplicationDTO{
				CandidateID: "cand-1",
				JobID:       "job-closed",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
			Expect(repo.applications).To(BeEmpty())
		})

		It("requires both candidate and job", func() {
			_, err := service.CreateApplication(context.Background(), application.CreateApplicationDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))

			details, ok := appErr.Details.(internal.ValidationErrors)
			Expect(ok).To(BeTrue())
			Expect(details.Errors).To(HaveLen(2))
		})
	})

	Describe("UpdateApplication", func() {
		var existing *application.Application

		BeforeEach(func() {
			var err error
			existing, err = service.CreateApplication(context.Background(), application.CreateApplicationDTO{
				CandidateID: "cand-1",
				JobID:       "job-open",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("moves the application through the pipeline", func() {
			status := application.StatusScreening

			updated, err := service.UpdateApplication(context.Background(), existing.ID, application.UpdateApplicationDTO{
				Status: &status,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Status).To(Equal(application.StatusScreening))
		})

		It("rejects an unknown pipeline status", func() {
			status := "on-hold"

			_, err := service.UpdateApplication(context.Background(), existing.ID, application.UpdateApplicationDTO{
				Status: &status,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("reports not found before validating the patch", func() {
			status := "on-hold"

			_, err := service.UpdateApplication(context.Background(), "missing-id", application.UpdateApplicationDTO{
				Status: &status,
			})

			Expect(err).To(MatchError(internal.ErrApplicationNotFound))
		})
	})

	Describe("CreateApplication over HTTP", func() {
		var handler *application.Handler

		BeforeEach(func() {
			handler = application.NewHandler(service, ownProfiles{"user-cand": "cand-own"})
		})

		post := func(user *auth.User, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", strings.NewReader(body))
			req = req.WithContext(auth.ContextWithUser(req.Context(), user))
			rec := httptest.NewRecorder()
			handler.CreateApplication(rec, req)
			return rec
		}

		It("ignores the body's candidate id for self-service applicants", func() {
			user := &auth.User{ID: "user-cand", TenantID: "t1", Role: auth.RoleCandidate, IsActive: true}

			rec := post(user, `{"candidate_id":"cand-other","job_id":"job-open"}`)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created application.Application
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.CandidateID).To(Equal("cand-own"))
		})

		It("honors the body's candidate id for callers who manage candidates", func() {
			user := &auth.User{ID: "user-mgr", TenantID: "t1", Role: auth.RoleManager, IsActive: true}

			rec := post(user, `{"candidate_id":"cand-other","job_id":"job-open"}`)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created application.Application
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.CandidateID).To(Equal("cand-other"))
		})

		It("rejects self-service applicants without a candidate profile", func() {
			user := &auth.User{ID: "user-stranger", TenantID: "t1", Role: auth.RoleCandidate, IsActive: true}

			rec := post(user, `{"candidate_id":"cand-other","job_id":"job-open"}`)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(repo.applications).To(BeEmpty())
		})
	})

	Describe("ListOwnApplications", func() {
		It("returns only the candidate's submissions", func() {
			_, err := service.CreateApplication(context.Background(), application.CreateApplicationDTO{
				CandidateID: "cand-1", JobID: "job-open",
			})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CreateApplication(context.Background(), application.CreateApplicationDTO{
				CandidateID: "cand-2", JobID: "job-open",
			})
			Expect(err).ToNot(HaveOccurred())

			own, err := service.ListOwnApplications(context.Background(), "cand-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(own).To(HaveLen(1))
			Expect(own[0].CandidateID).To(Equal("cand-1"))
		})
	})
})
