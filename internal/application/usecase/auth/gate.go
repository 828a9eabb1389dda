// internal/application/usecase/auth/gate.go
package auth

import (
	"context"
	"sync"
)

// State はゲートの認証状態です。
type State int

const (
	// StatePending は最初の通知がまだ来ていない状態
	StatePending State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "pending"
	}
}

// Session は検証済みのログイン情報です。
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// SessionSource はセッション変化を push で通知する外部コラボレータです。
// fn には有効なセッション、またはログアウト / 無効時に nil が渡されます。
// 戻り値の unsubscribe を呼ぶと以後の通知は止まります。
type SessionSource interface {
	OnSessionChange(fn func(*Session)) (unsubscribe func())
}

// Gate はセッション購読を所有し、管理画面への到達可否を判断します。
// セッション状態はこの購読の中だけで保持し、グローバルには置きません。
type Gate struct {
	mu          sync.Mutex
	state       State
	session     *Session
	closed      bool
	unsubscribe func()

	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
}

// NewGate は src を即座に購読します。最初の通知までは StatePending です。
func NewGate(src SessionSource) *Gate {
	g := &Gate{ready: make(chan struct{})}
	unsub := src.OnSessionChange(g.notify)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		unsub()
		return g
	}
	g.unsubscribe = unsub
	g.mu.Unlock()
	return g
}

func (g *Gate) notify(s *Session) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	if s != nil && s.UID != "" {
		cp := *s
		g.session = &cp
		g.state = StateAuthenticated
	} else {
		g.session = nil
		g.state = StateUnauthenticated
	}
	g.mu.Unlock()

	g.readyOnce.Do(func() { close(g.ready) })
}

// State は現在の状態を返します。
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session は認証済みならセッションのコピーを返します。
func (g *Gate) Session() (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticated || g.session == nil {
		return nil, false
	}
	cp := *g.session
	return &cp, true
}

// Await は状態が確定するまで待ちます。ctx が先に終わった場合は StatePending を返します。
func (g *Gate) Await(ctx context.Context) State {
	select {
	case <-g.ready:
		return g.State()
	case <-ctx.Done():
		return g.State()
	}
}

// Close は購読を解除します。何度呼んでも解除は 1 回だけです。
func (g *Gate) Close() {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		unsub := g.unsubscribe
		g.unsubscribe = nil
		g.mu.Unlock()

		if unsub != nil {
			unsub()
		}
	})
}
