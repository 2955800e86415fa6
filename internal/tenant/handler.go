package tenant

import (
	"encoding/json"
	"net/http"

	"github.com/jobnest/jobnest/internal/transport"
	"github.com/jobnest/jobnest/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  *Service
	Resolver *Resolver
}

func NewHandler(service *Service, resolver *Resolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Resolver:    resolver,
	}
}

// CreateTenant provisions a new workspace: the tenant row, its database
// partition, and the cookie binding the caller to it.
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var dto CreateTenantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTenant: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateTenant(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Resolver.IssueCookie(w, created.ID)
	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{"tenant": created})
}

// GetCurrentTenant returns the tenant identified by the request cookie, or
// null when no tenant is resolved. A missing tenant is not an error.
func (h *Handler) GetCurrentTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.Resolver.CurrentFromRequest(r)
	if err != nil {
		t = nil
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"tenant": t})
}

// UpdateCurrentTenant persists settings changes for the cookie-resolved tenant.
func (h *Handler) UpdateCurrentTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.Resolver.CurrentFromRequest(r)
	if err != nil || t == nil {
		h.Logger.Warn("UpdateCurrentTenant: no tenant resolved")
		h.WriteError(w, http.StatusNotFound, "no tenant resolved for request")
		return
	}

	var dto UpdateTenantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCurrentTenant: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(r.Context(), t, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	// settings changes may rename the subdomain, so refresh the cookie
	h.Resolver.IssueCookie(w, updated.ID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"tenant": updated})
}
