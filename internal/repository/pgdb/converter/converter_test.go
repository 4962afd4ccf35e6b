package converter

import (
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderConverter_ToEntity(t *testing.T) {
	completedAt := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	model := &OrderModel{
		ID:                 7,
		Status:             "PAYMENT_COMPLETED",
		TotalPrice:         4000,
		RegisteredAt:       completedAt.Add(-time.Minute),
		PaymentCompletedAt: &completedAt,
	}
	items := []OrderProductModel{
		{ID: 1, OrderID: 7, ProductID: 1, ProductNumber: "001", Price: 1000},
		{ID: 2, OrderID: 7, ProductID: 2, ProductNumber: "002", Price: 3000},
	}

	order := NewOrderConverter().ToEntity(model, items)

	assert.Equal(t, domain.OrderStatusPaymentCompleted, order.Status)
	assert.Equal(t, &completedAt, order.PaymentCompletedAt)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "002", order.Products[1].ProductNumber)
	assert.Equal(t, int64(7), order.Products[1].OrderID)
}

func TestProductConverter_NilSafe(t *testing.T) {
	conv := NewProductConverter()

	assert.Nil(t, conv.ToModel(nil))
	assert.Nil(t, conv.ToEntity(nil))
}
