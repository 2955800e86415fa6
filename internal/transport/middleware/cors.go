package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser clients on tenant subdomains and custom domains to
// call the API with credentials. Origins are not enumerable up front
// because tenants bring their own domains, so AllowOriginFunc reflects
// the request origin.
func CORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return origin != ""
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
