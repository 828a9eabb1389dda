// internal/adapters/in/http/handlers/session_handler.go
package handlers

import (
	"net/http"

	"github.com/Alanove07/designbynexa/internal/adapters/in/http/middleware"
)

// SessionHandler は GET /admin/api/session（ゲート通過後のログイン情報）です。
func SessionHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.CurrentSession(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"session":       s,
	})
}
