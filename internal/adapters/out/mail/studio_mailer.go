// internal/adapters/out/mail/studio_mailer.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	contactdom "github.com/Alanove07/designbynexa/internal/domain/contact"
)

// MailerConfig は送信元と通知先の設定です。
type MailerConfig struct {
	From     string // MAIL_FROM
	FromName string // MAIL_FROM_NAME
	NotifyTo string // CONTACT_NOTIFY_EMAIL（問い合わせ通知の宛先）
	SiteURL  string

	// 一斉送信の同時実行数（0 なら 5）
	BulkConcurrency int
}

// Mailer はテンプレートを描画して EmailClient で送信します。
// usecase.ContactMailer の実装でもあります。
type Mailer struct {
	client   EmailClient
	renderer *Renderer
	cfg      MailerConfig
	logger   *zap.Logger
}

func NewMailer(client EmailClient, cfg MailerConfig, logger *zap.Logger) (*Mailer, error) {
	if client == nil {
		return nil, errors.New("mail: client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r, err := NewRenderer(cfg.SiteURL)
	if err != nil {
		return nil, err
	}
	if cfg.FromName == "" {
		cfg.FromName = "Nexa Designs"
	}
	if cfg.BulkConcurrency <= 0 {
		cfg.BulkConcurrency = 5
	}
	if strings.TrimSpace(cfg.From) == "" {
		logger.Warn("[mail] WARN: MAIL_FROM is empty. Mailer will fail to send mail.")
	}
	return &Mailer{client: client, renderer: r, cfg: cfg, logger: logger.Named("mailer")}, nil
}

// Renderer はプレビュー用に描画器を返します。
func (m *Mailer) Renderer() *Renderer { return m.renderer }

func (m *Mailer) send(ctx context.Context, to string, r Rendered, meta any) error {
	err := m.client.Send(ctx, Email{
		From:     m.cfg.From,
		FromName: m.cfg.FromName,
		To:       strings.TrimSpace(to),
		Subject:  r.Subject,
		HTML:     r.HTML,
		Text:     r.Text,
		Template: r.Template,
		Meta:     meta,
	})
	if err != nil {
		m.logger.Error("[mail] send failed",
			zap.String("template", string(r.Template)),
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("send %s: %w", r.Template, err)
	}
	return nil
}

func (m *Mailer) SendWelcome(ctx context.Context, to string, d WelcomeData) error {
	r, err := m.renderer.Welcome(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

// SendContactConfirmation は問い合わせ送信者への受付確認メールです。
func (m *Mailer) SendContactConfirmation(ctx context.Context, msg contactdom.Message) error {
	d := ContactConfirmationData{SenderName: msg.Name, MessageID: msg.ID}
	r, err := m.renderer.ContactConfirmation(d)
	if err != nil {
		return err
	}
	return m.send(ctx, msg.Email, r, d)
}

// SendContactNotification はスタジオ宛ての新着通知です。通知先が未設定なら何もしません。
func (m *Mailer) SendContactNotification(ctx context.Context, msg contactdom.Message) error {
	to := strings.TrimSpace(m.cfg.NotifyTo)
	if to == "" {
		m.logger.Debug("[mail] CONTACT_NOTIFY_EMAIL is empty; skip notification")
		return nil
	}
	d := ContactNotificationData{
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		MessageID: msg.ID,
	}
	if !msg.CreatedAt.IsZero() {
		d.ReceivedAt = msg.CreatedAt.UTC().Format("2006-01-02 15:04 MST")
	}
	r, err := m.renderer.ContactNotification(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

func (m *Mailer) SendProjectQuote(ctx context.Context, to string, d ProjectQuoteData) error {
	r, err := m.renderer.ProjectQuote(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

func (m *Mailer) SendProjectUpdate(ctx context.Context, to string, d ProjectUpdateData) error {
	r, err := m.renderer.ProjectUpdate(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

func (m *Mailer) SendProjectDelivery(ctx context.Context, to string, d ProjectDeliveryData) error {
	r, err := m.renderer.ProjectDelivery(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

func (m *Mailer) SendNewsletter(ctx context.Context, to string, d NewsletterData) error {
	r, err := m.renderer.Newsletter(d)
	if err != nil {
		return err
	}
	return m.send(ctx, to, r, d)
}

// BulkResult は一斉送信の結果です。
type BulkResult struct {
	Sent   int               `json:"sent"`
	Failed map[string]string `json:"failed,omitempty"`
}

// SendBulkNewsletter は同じ号を複数宛先へ送ります。
// 1 通の失敗で他を止めず、失敗した宛先とエラーを返します。
func (m *Mailer) SendBulkNewsletter(ctx context.Context, recipients []string, d NewsletterData) (BulkResult, error) {
	d = d.withDefaults()
	r, err := m.renderer.Newsletter(d)
	if err != nil {
		return BulkResult{}, err
	}

	var (
		mu  sync.Mutex
		res = BulkResult{Failed: map[string]string{}}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.BulkConcurrency)
	for _, to := range recipients {
		to := strings.TrimSpace(to)
		if to == "" {
			continue
		}
		g.Go(func() error {
			err := m.send(gctx, to, r, d)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[to] = err.Error()
				return nil
			}
			res.Sent++
			return nil
		})
	}
	_ = g.Wait()

	if len(res.Failed) == 0 {
		res.Failed = nil
	}
	m.logger.Info("[mail] bulk newsletter done",
		zap.Int("issue", d.IssueNumber),
		zap.Int("sent", res.Sent),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// SendTemplate は JSON データからテンプレートを描画して送信します（管理画面用）。
func (m *Mailer) SendTemplate(ctx context.Context, name TemplateName, to string, raw json.RawMessage) (Rendered, error) {
	r, err := m.renderer.RenderJSON(name, raw)
	if err != nil {
		return Rendered{}, err
	}
	var meta any
	if len(bytes.TrimSpace(raw)) > 0 {
		meta = raw
	}
	return r, m.send(ctx, to, r, meta)
}
