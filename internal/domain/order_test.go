package domain

import (
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProduct(id int64, number string, status SellingStatus, price int64) Product {
	return Product{
		ID:            id,
		ProductNumber: number,
		Type:          ProductTypeHandmade,
		SellingStatus: status,
		Name:          "product-" + number,
		Price:         price,
	}
}

func TestNewOrder_TotalPrice(t *testing.T) {
	registeredAt := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	products := []Product{
		createProduct(1, "001", SellingStatusSelling, 1000),
		createProduct(2, "002", SellingStatusHold, 3000),
	}

	order := NewOrder(products, registeredAt)

	assert.Equal(t, int64(4000), order.TotalPrice)
	assert.Equal(t, OrderStatusCreated, order.Status)
	assert.Equal(t, registeredAt, order.RegisteredAt)
	assert.Nil(t, order.PaymentCompletedAt)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "001", order.Products[0].ProductNumber)
	assert.Equal(t, int64(2), order.Products[1].ProductID)
}

func TestNewOrder_DuplicateProducts(t *testing.T) {
	americano := createProduct(1, "001", SellingStatusSelling, 4000)

	order := NewOrder([]Product{americano, americano}, time.Now())

	assert.Len(t, order.Products, 2)
	assert.Equal(t, int64(8000), order.TotalPrice)
}

func TestNewOrder_Empty(t *testing.T) {
	order := NewOrder(nil, time.Now())

	assert.Empty(t, order.Products)
	assert.Zero(t, order.TotalPrice)
}

func TestNewOrder_PriceSnapshot(t *testing.T) {
	products := []Product{createProduct(1, "001", SellingStatusSelling, 4000)}

	order := NewOrder(products, time.Now())
	products[0].Price = 10000

	assert.Equal(t, int64(4000), order.TotalPrice)
	assert.Equal(t, int64(4000), order.Products[0].Price)
}

func TestOrder_PaymentCompleted(t *testing.T) {
	order := NewOrder([]Product{createProduct(1, "001", SellingStatusSelling, 1000)}, time.Now())
	completedAt := time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC)

	require.NoError(t, order.PaymentCompleted(completedAt))

	assert.Equal(t, OrderStatusPaymentCompleted, order.Status)
	require.NotNil(t, order.PaymentCompletedAt)
	assert.Equal(t, completedAt, *order.PaymentCompletedAt)
}

func TestOrder_PaymentCompletedTwice(t *testing.T) {
	order := NewOrder([]Product{createProduct(1, "001", SellingStatusSelling, 1000)}, time.Now())
	first := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	require.NoError(t, order.PaymentCompleted(first))
	err := order.PaymentCompleted(first.Add(time.Hour))

	assert.ErrorIs(t, err, e.ErrInvalidStatusTransition)
	assert.Equal(t, first, *order.PaymentCompletedAt)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusCreated, OrderStatusPaymentCompleted))
	assert.False(t, CanTransition(OrderStatusPaymentCompleted, OrderStatusCreated))
	assert.False(t, CanTransition(OrderStatusPaymentCompleted, OrderStatusPaymentCompleted))
	assert.False(t, CanTransition(OrderStatusCreated, OrderStatusCreated))
	assert.False(t, CanTransition(OrderStatus("CANCELED"), OrderStatusPaymentCompleted))
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusCreated.IsValid())
	assert.True(t, OrderStatusPaymentCompleted.IsValid())
	assert.False(t, OrderStatus("CANCELED").IsValid())
}

func TestForDisplay(t *testing.T) {
	assert.ElementsMatch(t, []SellingStatus{SellingStatusSelling, SellingStatusHold}, ForDisplay())
}

func TestProductType_IsValid(t *testing.T) {
	assert.True(t, ProductTypeHandmade.IsValid())
	assert.True(t, ProductTypeBakery.IsValid())
	assert.False(t, ProductType("COFFEE").IsValid())
	assert.False(t, SellingStatus("").IsValid())
}
