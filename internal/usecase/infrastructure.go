package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
)

// TxManager выполняет fn в транзакции, которая передаётся репозиториям через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MailSendClient — внешний транспорт писем. Возвращает true, если письмо принято к отправке.
type MailSendClient interface {
	SendEmail(ctx context.Context, fromEmail, toEmail, subject, content string) bool
}

type ReportsInfra interface {
	UploadReport(ctx context.Context, req *UploadReportReq) (*UploadReportRes, error)
	CleanupReports(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует событие заказа для outbox.
type EventEncoder interface {
	EncodeOrderEvent(eventID string, eventType OutboxEventType, order *domain.Order, occurredAt time.Time) ([]byte, error)
}
