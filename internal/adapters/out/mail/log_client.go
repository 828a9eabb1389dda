package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogClient は送信せずにログへ出すだけの EmailClient です（開発用）。
type LogClient struct {
	logger *zap.Logger
}

func NewLogClient(logger *zap.Logger) *LogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogClient{logger: logger.Named("mail")}
}

func (c *LogClient) Send(_ context.Context, e Email) error {
	if err := e.validate(); err != nil {
		return err
	}
	c.logger.Info("[mail] email would be sent (no delivery configured)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("template", string(e.Template)),
	)
	return nil
}
