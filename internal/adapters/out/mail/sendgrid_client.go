package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridClient implements EmailClient
type SendGridClient struct {
	apiKey string
	logger *zap.Logger
}

func NewSendGridClient(apiKey string, logger *zap.Logger) *SendGridClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendGridClient{apiKey: apiKey, logger: logger.Named("sendgrid")}
}

// Send sends an email using SendGrid
func (c *SendGridClient) Send(ctx context.Context, e Email) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if err := e.validate(); err != nil {
		return err
	}

	fromEmail := sgmail.NewEmail(e.FromName, e.From)
	toEmail := sgmail.NewEmail("", e.To)

	text := e.Text
	if text == "" {
		text = e.Subject
	}
	message := sgmail.NewSingleEmail(fromEmail, e.Subject, toEmail, text, e.HTML)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}

	if response.StatusCode >= 400 {
		c.logger.Error("[sendgrid] error status",
			zap.Int("status", response.StatusCode),
			zap.String("body", response.Body),
		)
		return fmt.Errorf(
			"sendgrid send failed: status=%d, body=%s",
			response.StatusCode,
			response.Body,
		)
	}

	c.logger.Info("[sendgrid] mail sent",
		zap.Int("status", response.StatusCode),
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
	)
	return nil
}
