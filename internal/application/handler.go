package application

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jobnest/jobnest/internal/auth"
	"github.com/jobnest/jobnest/internal/transport"
	"github.com/jobnest/jobnest/pkg/logger"
)

// CandidateResolver maps the signed-in user to their candidate profile so
// self-service routes never trust a candidate id from the request.
type CandidateResolver interface {
	CandidateIDForUser(ctx context.Context, userID string) (string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service    *Service
	Candidates CandidateResolver
}

func NewHandler(service *Service, candidates CandidateResolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Candidates:  candidates,
	}
}

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var dto CreateApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateApplication: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Self-service applicants submit for their own profile only. The
	// candidate id in the body is honored just for callers who manage
	// candidates on others' behalf.
	if user, ok := auth.UserFromContext(r.Context()); ok && !auth.HasPermission(user.Role, auth.PermManageCands) {
		candidateID, err := h.Candidates.CandidateIDForUser(r.Context(), user.ID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		dto.CandidateID = candidateID
	}

	created, err := h.Service.CreateApplication(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := ListApplicationsFilter{
		JobID:       r.URL.Query().Get("job_id"),
		CandidateID: r.URL.Query().Get("candidate_id"),
		Status:      r.URL.Query().Get("status"),
	}

	apps, err := h.Service.ListApplications(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, apps)
}

// ListOwnApplications serves the signed-in candidate's submissions.
func (h *Handler) ListOwnApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	candidateID, err := h.Candidates.CandidateIDForUser(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	apps, err := h.Service.ListOwnApplications(r.Context(), candidateID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	var dto UpdateApplicationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateApplication: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateApplication(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
