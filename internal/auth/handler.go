package auth

import (
	"encoding/json"
	"net/http"

	"github.com/jobnest/jobnest/internal/tenant"
	"github.com/jobnest/jobnest/internal/transport"
	"github.com/jobnest/jobnest/pkg/logger"
)

const accessTokenCookie = "accessToken"

// TenantSource resolves the tenant a login request belongs to. API routes
// bypass the resolver middleware, so the handler asks for it explicitly.
type TenantSource interface {
	CurrentFromRequest(r *http.Request) (*tenant.Tenant, error)
}

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Tenants TenantSource
	secure  bool
}

func NewHandler(service *Service, tenants TenantSource, env string) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
		Tenants:     tenants,
		secure:      env == "production",
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tenants.CurrentFromRequest(r)
	if err != nil || t == nil {
		h.Logger.Warn("Login: no tenant resolved for request")
		h.WriteError(w, http.StatusBadRequest, "no tenant resolved for request")
		return
	}

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Login: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, user, err := h.Service.Authenticate(r.Context(), t.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, tokens.AccessToken)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": tokens,
		"user":   user,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tenants.CurrentFromRequest(r)
	if err != nil || t == nil {
		h.Logger.Warn("Register: no tenant resolved for request")
		h.WriteError(w, http.StatusBadRequest, "no tenant resolved for request")
		return
	}

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Register: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// self-service registration may not pick a privileged role
	if dto.Role != "" && dto.Role != string(RoleCandidate) {
		if caller, ok := UserFromContext(r.Context()); !ok || !caller.HasPermission(PermAssignRoles) {
			dto.Role = string(RoleCandidate)
		}
	}

	user, err := h.Service.Register(r.Context(), t.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(r.Context(), dto.RefreshToken)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.setSessionCookie(w, tokens.AccessToken)
	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware requires a valid token (Authorization header or session
// cookie) and attaches the loaded principal to the request context. The
// principal is bound to exactly one tenant, so its tenant id also becomes
// the request's tenant context; API routes bypass the hostname resolver.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.principalFromRequest(r)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := ContextWithUser(r.Context(), user)
		ctx = tenant.ContextWithTenantID(ctx, user.TenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches the principal when a valid token is
// present and lets the request through either way. Page route guards decide
// what to do with an anonymous request.
func (h *Handler) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := h.principalFromRequest(r); err == nil {
			ctx := ContextWithUser(r.Context(), user)
			ctx = tenant.ContextWithTenantID(ctx, user.TenantID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) principalFromRequest(r *http.Request) (*User, error) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		if c, err := r.Cookie(accessTokenCookie); err == nil {
			token = c.Value
		}
	}
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}

	// the session binding is the claim set; a stale token for a moved user
	// must not cross tenants
	if user.TenantID != claims.TenantID {
		h.Logger.Warn("token tenant mismatch", "user_id", user.ID,
			"claim_tenant", claims.TenantID, "user_tenant", user.TenantID)
		return nil, ErrMissingToken
	}
	if !user.IsActive {
		return nil, ErrMissingToken
	}

	return user, nil
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, accessToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
