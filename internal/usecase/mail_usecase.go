package usecase

import (
	"context"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
)

// MailUseCase отправляет письма и ведёт историю успешных отправок.
type MailUseCase struct {
	client      MailSendClient
	historyRepo MailSendHistoryRepository
	logger      logger.Logger
}

func NewMailUC(client MailSendClient, historyRepo MailSendHistoryRepository, logger logger.Logger) *MailUseCase {
	return &MailUseCase{
		client:      client,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// SendMail делает одну синхронную попытку отправки.
// История сохраняется только после того, как транспорт подтвердил отправку.
func (m *MailUseCase) SendMail(ctx context.Context, req *SendMailReq) (bool, error) {
	const op = "MailUseCase.SendMail"

	if !m.client.SendEmail(ctx, req.FromEmail, req.ToEmail, req.Subject, req.Content) {
		m.logger.Warnf("mail was not sent: to=%s, subject=%s", req.ToEmail, req.Subject)
		return false, nil
	}

	history := domain.NewMailSendHistory(req.FromEmail, req.ToEmail, req.Subject, req.Content)
	if _, err := m.historyRepo.Create(ctx, history); err != nil {
		return false, e.Wrap(op, err)
	}

	return true, nil
}
