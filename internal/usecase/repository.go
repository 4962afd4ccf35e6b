package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// GetLastProductNumber возвращает наибольший выданный номер; false, если товаров нет.
	GetLastProductNumber(ctx context.Context) (string, bool, error)
	GetBySellingStatuses(ctx context.Context, statuses []domain.SellingStatus) ([]domain.Product, error)
	GetByProductNumbers(ctx context.Context, numbers []string) ([]domain.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	UpdatePaymentCompleted(ctx context.Context, order *domain.Order) error
	// FindOrdersBy возвращает заказы в статусе status, оплаченные в полуинтервале [from, to).
	FindOrdersBy(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error)
}

type MailSendHistoryRepository interface {
	Create(ctx context.Context, history *domain.MailSendHistory) (*domain.MailSendHistory, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseProcessing(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64, reason string) error
}

type CacheRepository interface {
	GetSellingProducts(ctx context.Context) ([]ProductInfo, bool, error)
	SetSellingProducts(ctx context.Context, products []ProductInfo) error
	DeleteSellingProducts(ctx context.Context) error
}

type ReportRepository interface {
	Upload(ctx context.Context, report *domain.SalesReport) (string, error)
	Delete(ctx context.Context, key string) error
}
