package mail

import (
	"context"

	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
)

// LogMailClient — транспорт писем, который только пишет письмо в лог.
// Используется, пока в окружении нет SMTP.
type LogMailClient struct {
	logger logger.Logger
}

func NewLogMailClient(logger logger.Logger) *LogMailClient {
	return &LogMailClient{logger: logger}
}

func (c *LogMailClient) SendEmail(ctx context.Context, fromEmail, toEmail, subject, content string) bool {
	if ctx.Err() != nil {
		c.logger.Warnf("mail to %s was not sent: %v", toEmail, ctx.Err())
		return false
	}

	c.logger.Infof("sending mail: from=%s, to=%s, subject=%q, content=%q", fromEmail, toEmail, subject, content)
	return true
}
