package tenant

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/jobnest/jobnest/internal"
)

// Resolver maps an inbound request to a tenant before any tenant-scoped
// operation executes. Resolution order: tenantId cookie, then hostname
// (subdomain of the base domain or a full custom domain).
type Resolver struct {
	repo   Repository
	cfg    internal.TenancyConfig
	env    string
	logger *slog.Logger
}

func NewResolver(repo Repository, cfg internal.TenancyConfig, env string, logger *slog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		cfg:    cfg,
		env:    env,
		logger: logger,
	}
}

// Middleware attaches the resolved tenant to the request context and
// refreshes the tenant cookie. API routes, static assets, and paths with a
// file extension bypass resolution entirely.
func (rs *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rs.exemptPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		host := hostWithoutPort(r.Host)

		// A previously issued cookie wins over hostname classification so
		// navigation does not pay a lookup per request.
		if c, err := r.Cookie(rs.cfg.CookieName); err == nil && c.Value != "" {
			if t, err := rs.repo.GetByID(r.Context(), c.Value); err == nil {
				rs.issueCookie(w, t.ID)
				next.ServeHTTP(w, r.WithContext(ContextWithTenant(r.Context(), t)))
				return
			} else if !isNotFound(err) {
				rs.logger.Error("tenant cookie lookup failed", "error", err)
			}
		}

		if label, ok := rs.subdomainLabel(host); ok {
			if label == "" {
				// canonical host itself; no tenant context
				next.ServeHTTP(w, r)
				return
			}
			t, err := rs.repo.GetBySubdomain(r.Context(), label)
			if err != nil {
				if !isNotFound(err) {
					rs.logger.Error("tenant subdomain lookup failed", "subdomain", label, "error", err)
				}
				rs.redirectToCanonicalHost(w, r)
				return
			}
			rs.issueCookie(w, t.ID)
			next.ServeHTTP(w, r.WithContext(ContextWithTenant(r.Context(), t)))
			return
		}

		// Custom domain. An unknown domain is not fatal; the request
		// proceeds without tenant context and scoped pages render empty.
		t, err := rs.repo.GetByCustomDomain(r.Context(), host)
		if err != nil {
			if !isNotFound(err) {
				rs.logger.Error("tenant custom domain lookup failed", "host", host, "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}
		rs.issueCookie(w, t.ID)
		next.ServeHTTP(w, r.WithContext(ContextWithTenant(r.Context(), t)))
	})
}

// CurrentFromRequest resolves the tenant from the request cookie only. It is
// used by API endpoints, which bypass the resolver middleware.
func (rs *Resolver) CurrentFromRequest(r *http.Request) (*Tenant, error) {
	c, err := r.Cookie(rs.cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil, internal.ErrNoTenantContext
	}
	t, err := rs.repo.GetByID(r.Context(), c.Value)
	if err != nil {
		if isNotFound(err) {
			return nil, internal.ErrNoTenantContext
		}
		return nil, err
	}
	return t, nil
}

// IssueCookie writes the tenant-identifying cookie so subsequent requests
// skip hostname resolution.
func (rs *Resolver) IssueCookie(w http.ResponseWriter, tenantID string) {
	rs.issueCookie(w, tenantID)
}

func (rs *Resolver) issueCookie(w http.ResponseWriter, tenantID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     rs.cfg.CookieName,
		Value:    tenantID,
		Path:     "/",
		MaxAge:   int(rs.cfg.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   rs.env == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (rs *Resolver) exemptPath(path string) bool {
	if strings.HasPrefix(path, "/api") ||
		strings.HasPrefix(path, "/static") ||
		strings.HasPrefix(path, "/swagger") ||
		path == "/healthz" {
		return true
	}
	// assets such as /favicon.ico or /openapi.yml
	return strings.Contains(path, ".")
}

// subdomainLabel classifies host against the configured base domain. It
// returns (label, true) when host belongs to the base domain; the label is
// empty for the canonical host and reserved prefixes.
func (rs *Resolver) subdomainLabel(host string) (string, bool) {
	base := rs.cfg.BaseDomain
	if host == base {
		return "", true
	}
	if !strings.HasSuffix(host, "."+base) {
		return "", false
	}
	label := strings.TrimSuffix(host, "."+base)
	if label == "www" || label == "app" || strings.Contains(label, ".") {
		return "", true
	}
	return label, true
}

func (rs *Resolver) redirectToCanonicalHost(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil || rs.env == "production" {
		scheme = "https"
	}
	http.Redirect(w, r, scheme+"://"+rs.cfg.BaseDomain+r.URL.RequestURI(), http.StatusFound)
}

func hostWithoutPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func isNotFound(err error) bool {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return appErr.Type == internal.ErrorTypeNotFound
	}
	return false
}
