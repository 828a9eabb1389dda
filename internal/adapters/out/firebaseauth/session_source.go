// internal/adapters/out/firebaseauth/session_source.go
package firebaseauth

import (
	"context"
	"net/http"
	"strings"
	"sync"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	authuc "github.com/Alanove07/designbynexa/internal/application/usecase/auth"
)

// SessionCookieName は Firebase Hosting が転送する唯一の cookie 名です。
const SessionCookieName = "__session"

// TokenVerifier は *fbauth.Client が満たす ID トークン検証の最小契約です。
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

var _ TokenVerifier = (*fbauth.Client)(nil)

// TokenSessionSource は 1 リクエスト分の ID トークンを検証し、結果を push で通知します。
//   - 検証はゴルーチンで行い、成功なら Session、失敗 / トークン無しなら nil を通知
//   - unsubscribe は検証をキャンセルし、ゴルーチンの終了を待つ
type TokenSessionSource struct {
	ctx      context.Context
	verifier TokenVerifier
	idToken  string
	logger   *zap.Logger
}

func NewTokenSessionSource(ctx context.Context, verifier TokenVerifier, idToken string, logger *zap.Logger) *TokenSessionSource {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSessionSource{
		ctx:      ctx,
		verifier: verifier,
		idToken:  strings.TrimSpace(idToken),
		logger:   logger,
	}
}

// FromRequest は Authorization: Bearer または __session cookie からトークンを取り出します。
func FromRequest(r *http.Request, verifier TokenVerifier, logger *zap.Logger) *TokenSessionSource {
	return NewTokenSessionSource(r.Context(), verifier, TokenFromRequest(r), logger)
}

// TokenFromRequest はリクエストから ID トークンを取り出します。無ければ空文字。
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); tok != "" {
			return tok
		}
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

func (s *TokenSessionSource) OnSessionChange(fn func(*authuc.Session)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		sess := s.verify(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(sess)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (s *TokenSessionSource) verify(ctx context.Context) *authuc.Session {
	if s.idToken == "" {
		return nil
	}
	if s.verifier == nil {
		s.logger.Warn("[firebase_auth] verifier is nil; treating as signed out")
		return nil
	}

	token, err := s.verifier.VerifyIDToken(ctx, s.idToken)
	if err != nil {
		s.logger.Debug("[firebase_auth] invalid token", zap.Error(err))
		return nil
	}
	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return nil
	}
	return &authuc.Session{
		UID:   uid,
		Email: claimString(token.Claims, "email"),
		Name:  claimString(token.Claims, "name"),
	}
}

func claimString(claims map[string]interface{}, key string) string {
	if raw, ok := claims[key]; ok {
		if s, ok2 := raw.(string); ok2 {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
