package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the configured browser origins with credentials; preflight
// responses are cached for an hour.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:8080"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodPatch, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		MaxAge:           3600,
		AllowCredentials: true,
	})

	return handler.Handler
}
