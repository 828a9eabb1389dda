// internal/adapters/in/http/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS は許可オリジンを指定した CORS ミドルウェアです。
// origins が空なら開発用に "*"（credentials なし）を許可します。
func CORS(origins []string) func(http.Handler) http.Handler {
	allowCreds := true
	if len(origins) == 0 {
		origins = []string{"*"}
		allowCreds = false
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: allowCreds,
		MaxAge:           600,
	})
}
