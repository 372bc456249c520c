package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORSMiddleware enveloppe le routeur avec la politique CORS de l'API
func CORSMiddleware(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(next)
}
