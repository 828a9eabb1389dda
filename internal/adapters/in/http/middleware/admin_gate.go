// internal/adapters/in/http/middleware/admin_gate.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	authuc "github.com/Alanove07/designbynexa/internal/application/usecase/auth"
)

// context key は string を使わず、衝突回避のため独自型を使用
type ctxKey struct{ name string }

var ctxKeySession = ctxKey{name: "adminSession"}

// SessionSourceFactory はリクエストごとのセッション購読元を作ります。
type SessionSourceFactory func(r *http.Request) authuc.SessionSource

// AdminGate は管理画面ルートの前段です。
//   - リクエストごとに Gate を作って購読し、状態が確定するまで待つ
//   - 未認証: ブラウザの GET はログイン入口へ 303、それ以外は 401 JSON
//   - 認証済み: Session を context に入れて次へ
//
// 後続のハンドラ（Editor の生成を含む）は認証済みのときだけ呼ばれます。
type AdminGate struct {
	Sessions  SessionSourceFactory
	LoginPath string
	Logger    *zap.Logger
}

func (m *AdminGate) Handler(next http.Handler) http.Handler {
	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loginPath := strings.TrimSpace(m.LoginPath)
	if loginPath == "" {
		loginPath = "/admin"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Sessions == nil {
			writeGateJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "admin gate not initialized"})
			return
		}

		gate := authuc.NewGate(m.Sessions(r))
		defer gate.Close()

		state := gate.Await(r.Context())
		sess, ok := gate.Session()
		if state != authuc.StateAuthenticated || !ok {
			logger.Debug("[admin_gate] denied",
				zap.String("state", state.String()),
				zap.String("path", r.URL.Path),
			)
			deny(w, r, loginPath)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func deny(w http.ResponseWriter, r *http.Request, loginPath string) {
	if r.Method == http.MethodGet && acceptsHTML(r) {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	}
	writeGateJSON(w, http.StatusUnauthorized, map[string]string{
		"error": "unauthorized",
		"login": loginPath,
	})
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "text/html")
}

func writeGateJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// CurrentSession は AdminGate が検証したセッションを返します。
func CurrentSession(ctx context.Context) (*authuc.Session, bool) {
	s, ok := ctx.Value(ctxKeySession).(*authuc.Session)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}
