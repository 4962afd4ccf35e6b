package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/logger"
	"github.com/google/uuid"
)

// OrderUseCase реализует оформление, оплату и выборку заказов.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	encoder     EventEncoder
	txManager   TxManager
	logger      logger.Logger
	now         func() time.Time
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	encoder EventEncoder,
	txManager TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		encoder:     encoder,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateOrder создаёт заказ из товаров с указанными номерами.
// Цены фиксируются на момент создания; вместе с заказом в outbox пишется событие ORDER_CREATED.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*OrderInfo, error) {
	const op = "OrderUseCase.CreateOrder"

	if len(req.ProductNumbers) == 0 {
		return nil, e.Wrap(op, e.ErrNoProducts)
	}

	registeredAt := req.RegisteredAt
	if registeredAt.IsZero() {
		registeredAt = o.now()
	}

	var saved *domain.Order
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		products, err := o.findProductsBy(ctx, req.ProductNumbers)
		if err != nil {
			return err
		}

		saved, err = o.orderRepo.Create(ctx, domain.NewOrder(products, registeredAt))
		if err != nil {
			return err
		}

		return o.publishEvent(ctx, OrderCreated, saved)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order created: id=%d, total_price=%d, items=%d", saved.ID, saved.TotalPrice, len(saved.Products))

	info := NewOrderInfo(saved)
	return &info, nil
}

// CompletePayment переводит заказ в PAYMENT_COMPLETED. Строка заказа блокируется до конца транзакции,
// повторная оплата отклоняется с e.ErrInvalidStatusTransition.
func (o *OrderUseCase) CompletePayment(ctx context.Context, req *CompletePaymentReq) (*OrderInfo, error) {
	const op = "OrderUseCase.CompletePayment"

	if req.OrderID <= 0 {
		return nil, e.Wrap(op, e.ErrInvalidOrderID)
	}

	completedAt := req.CompletedAt
	if completedAt.IsZero() {
		completedAt = o.now()
	}

	var order *domain.Order
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = o.orderRepo.GetByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if err := order.PaymentCompleted(completedAt); err != nil {
			return err
		}

		if err := o.orderRepo.UpdatePaymentCompleted(ctx, order); err != nil {
			return err
		}

		return o.publishEvent(ctx, OrderPaymentCompleted, order)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := NewOrderInfo(order)
	return &info, nil
}

// FindOrders возвращает заказы со статусом req.Status, оплаченные в [req.From, req.To).
func (o *OrderUseCase) FindOrders(ctx context.Context, req *FindOrdersReq) ([]OrderInfo, error) {
	const op = "OrderUseCase.FindOrders"

	if !req.Status.IsValid() {
		return nil, e.Wrap(op, e.ErrInvalidOrderStatus)
	}

	if !req.From.Before(req.To) {
		return nil, e.Wrap(op, e.ErrInvalidTimeWindow)
	}

	orders, err := o.orderRepo.FindOrdersBy(ctx, req.From, req.To, req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]OrderInfo, 0, len(orders))
	for i := range orders {
		result = append(result, NewOrderInfo(&orders[i]))
	}

	return result, nil
}

// findProductsBy возвращает товары в порядке номеров запроса, повторяя товар для повторяющихся номеров.
func (o *OrderUseCase) findProductsBy(ctx context.Context, numbers []string) ([]domain.Product, error) {
	unique := make([]string, 0, len(numbers))
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}

	products, err := o.productRepo.GetByProductNumbers(ctx, unique)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byNumber[p.ProductNumber] = p
	}

	result := make([]domain.Product, 0, len(numbers))
	for _, n := range numbers {
		p, ok := byNumber[strings.TrimSpace(n)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", e.ErrProductNotFound, n)
		}
		result = append(result, p)
	}

	return result, nil
}

// publishEvent пишет событие заказа в outbox в текущей транзакции.
func (o *OrderUseCase) publishEvent(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	eventID := uuid.NewString()
	occurredAt := o.now().UTC()

	payload, err := o.encoder.EncodeOrderEvent(eventID, eventType, order, occurredAt)
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, order.ID, payload, occurredAt))
	return err
}
