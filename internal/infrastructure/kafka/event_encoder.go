package kafka

import (
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventEncoder сериализует события заказа в protobuf (google.protobuf.Struct).
type EventEncoder struct{}

func NewEventEncoder() *EventEncoder {
	return &EventEncoder{}
}

func (EventEncoder) EncodeOrderEvent(eventID string, eventType usecase.OutboxEventType, order *domain.Order, occurredAt time.Time) ([]byte, error) {
	products := make([]any, 0, len(order.Products))
	for _, p := range order.Products {
		products = append(products, map[string]any{
			"product_id":     p.ProductID,
			"product_number": p.ProductNumber,
			"price":          p.Price,
		})
	}

	var paymentCompletedAt any
	if order.PaymentCompletedAt != nil {
		paymentCompletedAt = order.PaymentCompletedAt.UTC().Format(time.RFC3339Nano)
	}

	event, err := structpb.NewStruct(map[string]any{
		"event_id":    eventID,
		"event_type":  string(eventType),
		"occurred_at": occurredAt.UTC().Format(time.RFC3339Nano),
		"order": map[string]any{
			"id":                   order.ID,
			"status":               string(order.Status),
			"total_price":          order.TotalPrice,
			"registered_at":        order.RegisteredAt.UTC().Format(time.RFC3339Nano),
			"payment_completed_at": paymentCompletedAt,
			"products":             products,
		},
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(event)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

// DecodeOrderEvent разбирает payload, записанный EncodeOrderEvent.
func DecodeOrderEvent(data []byte) (map[string]any, error) {
	var event structpb.Struct
	if err := proto.Unmarshal(data, &event); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return event.AsMap(), nil
}
