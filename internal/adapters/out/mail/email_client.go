// internal/adapters/out/mail/email_client.go
package mail

import (
	"context"
	"errors"
	"strings"
)

// Email は送信 1 通分です。
type Email struct {
	From     string
	FromName string
	To       string
	Subject  string
	HTML     string
	Text     string

	// Template は送信に使ったテンプレート名（エンドポイント送信時のペイロードに含める）
	Template TemplateName
	// Meta はテンプレートに渡したデータ（エンドポイント送信時のみ使用）
	Meta any
}

// EmailClient は実際のメール送信クライアント（SendGrid / 外部 API / ログ出力）を
// 抽象化した下位レベルのインターフェースです。
type EmailClient interface {
	Send(ctx context.Context, e Email) error
}

var (
	ErrEmptyFrom = errors.New("mail: from address is empty")
	ErrEmptyTo   = errors.New("mail: to address is empty")
)

func (e Email) validate() error {
	if strings.TrimSpace(e.From) == "" {
		return ErrEmptyFrom
	}
	if strings.TrimSpace(e.To) == "" {
		return ErrEmptyTo
	}
	return nil
}
