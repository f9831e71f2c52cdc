package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS returns a CORS middleware with the given allowed origins
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// DefaultCORS allows the frontend URL plus any configured origins. The
// Expo dev server ports are added when the frontend runs locally.
func DefaultCORS(frontendURL string, extra []string) func(http.Handler) http.Handler {
	allowedOrigins := append([]string{frontendURL}, extra...)

	// Add localhost origins for development
	if strings.Contains(frontendURL, "localhost") || strings.Contains(frontendURL, "127.0.0.1") {
		allowedOrigins = append(allowedOrigins,
			"http://localhost:8081",
			"http://localhost:19006",
			"http://127.0.0.1:8081",
			"http://127.0.0.1:19006",
		)
	}

	return CORS(allowedOrigins)
}
