package mail

import (
	"strings"

	"go.uber.org/zap"
)

// ClientOptions は EmailClient の選択に使う設定です。
//   - EndpointURL    : EMAIL_API_ENDPOINT（最優先）
//   - SendGridAPIKey : SENDGRID_API_KEY または Secret Manager から解決した値
type ClientOptions struct {
	EndpointURL    string
	SendGridAPIKey string
}

// NewEmailClient は設定に応じて送信クライアントを選びます。
// どちらも未設定の場合はログ出力だけの LogClient を返します。
func NewEmailClient(opts ClientOptions, logger *zap.Logger) EmailClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	if u := strings.TrimSpace(opts.EndpointURL); u != "" {
		logger.Info("[mail] using email endpoint", zap.String("url", u))
		return NewEndpointClient(u, nil)
	}
	if k := strings.TrimSpace(opts.SendGridAPIKey); k != "" {
		logger.Info("[mail] using SendGrid")
		return NewSendGridClient(k, logger)
	}

	logger.Warn("[mail] WARN: neither EMAIL_API_ENDPOINT nor SENDGRID_API_KEY is set. Emails will only be logged.")
	return NewLogClient(logger)
}
