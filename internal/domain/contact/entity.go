// internal/domain/contact/entity.go
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// CollectionMessages は問い合わせの保存先コレクション名です。
const CollectionMessages = "contactMessages"

// Message はお問い合わせフォームの 1 件です。
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrRequiredField = errors.New("contact: required field is empty")
	ErrInvalidEmail  = errors.New("contact: invalid email")
	ErrTooLong       = errors.New("contact: message too long")
)

// MaxMessageLength はメッセージ本文の上限（文字数）
const MaxMessageLength = 5000

// Normalize は前後の空白を除去したコピーを返します。
func (m Message) Normalize() Message {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	return m
}

// Validate は name / email / message をチェックします。
func (m Message) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name", ErrRequiredField)
	}
	if m.Email == "" {
		return fmt.Errorf("%w: email", ErrRequiredField)
	}
	if m.Message == "" {
		return fmt.Errorf("%w: message", ErrRequiredField)
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, m.Email)
	}
	if len([]rune(m.Message)) > MaxMessageLength {
		return ErrTooLong
	}
	return nil
}

// Record はストア保存用のフラットなレコードを返します（ID は含めない）。
func (m Message) Record() map[string]any {
	return map[string]any{
		"messageId": m.ID,
		"name":      m.Name,
		"email":     m.Email,
		"message":   m.Message,
		"status":    "new",
		"createdAt": m.CreatedAt.UTC(),
	}
}
