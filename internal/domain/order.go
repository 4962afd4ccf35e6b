package domain

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
)

// OrderStatus описывает статус заказа
type OrderStatus string

const (
	OrderStatusCreated          OrderStatus = "CREATED"
	OrderStatusPaymentCompleted OrderStatus = "PAYMENT_COMPLETED"
)

func (s OrderStatus) IsValid() bool {
	_, ok := validNext[s]
	return ok
}

// Отмены и возвраты не поддерживаются: единственный переход CREATED -> PAYMENT_COMPLETED.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusCreated:          {OrderStatusPaymentCompleted: true},
	OrderStatusPaymentCompleted: {},
}

// CanTransition сообщает, допустим ли переход между статусами заказа.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// OrderProduct — позиция заказа. Цена копируется из товара в момент создания заказа
// и дальше не зависит от изменений каталога.
type OrderProduct struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductNumber string
	Price         int64
}

// Order описывает заказ
type Order struct {
	ID                 int64
	Status             OrderStatus
	TotalPrice         int64
	RegisteredAt       time.Time
	PaymentCompletedAt *time.Time
	Products           []OrderProduct
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}

// NewOrder создаёт заказ в статусе CREATED: по одной позиции на каждый элемент products
// (повторы сохраняются). Итог равен сумме зафиксированных цен.
func NewOrder(products []Product, registeredAt time.Time) *Order {
	items := make([]OrderProduct, 0, len(products))
	for _, p := range products {
		items = append(items, OrderProduct{
			ProductID:     p.ID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		})
	}

	return &Order{
		Status:       OrderStatusCreated,
		TotalPrice:   calculateTotalPrice(items),
		RegisteredAt: registeredAt,
		Products:     items,
	}
}

// PaymentCompleted переводит заказ в PAYMENT_COMPLETED и запоминает время оплаты.
// Повторная оплата возвращает e.ErrInvalidStatusTransition.
func (o *Order) PaymentCompleted(at time.Time) error {
	if !CanTransition(o.Status, OrderStatusPaymentCompleted) {
		return fmt.Errorf("%w: %s -> %s", e.ErrInvalidStatusTransition, o.Status, OrderStatusPaymentCompleted)
	}

	o.Status = OrderStatusPaymentCompleted
	o.PaymentCompletedAt = &at
	return nil
}

func calculateTotalPrice(items []OrderProduct) int64 {
	var total int64
	for _, item := range items {
		total += item.Price
	}

	return total
}
