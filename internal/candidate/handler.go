package candidate

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jobnest/jobnest/internal/auth"
	"github.com/jobnest/jobnest/internal/transport"
	"github.com/jobnest/jobnest/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var dto CreateCandidateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCandidate: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateCandidate(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

// GetOwnProfile serves the candidate profile linked to the signed-in user.
func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	c, err := h.Service.GetOwnProfile(r.Context(), user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	filter := ListCandidatesFilter{
		Skill:    r.URL.Query().Get("skill"),
		Location: r.URL.Query().Get("location"),
	}

	candidates, err := h.Service.ListCandidates(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, candidates)
}

func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var dto UpdateCandidateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCandidate: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateCandidate(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteCandidate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
