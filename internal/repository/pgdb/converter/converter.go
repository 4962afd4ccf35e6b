package converter

import (
	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// OrderConverter собирает заказ из строки orders и его позиций.
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel, products []OrderProductModel) *domain.Order
}

type MailSendHistoryConverter interface {
	ToModel(entity *domain.MailSendHistory) *MailSendHistoryModel
	ToEntity(model *MailSendHistoryModel) *domain.MailSendHistory
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverter() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:            entity.ID,
		ProductNumber: entity.ProductNumber,
		Type:          string(entity.Type),
		SellingStatus: string(entity.SellingStatus),
		Name:          entity.Name,
		Price:         entity.Price,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:            model.ID,
		ProductNumber: model.ProductNumber,
		Type:          domain.ProductType(model.Type),
		SellingStatus: domain.SellingStatus(model.SellingStatus),
		Name:          model.Name,
		Price:         model.Price,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

type OrderConverterImpl struct{}

func NewOrderConverter() *OrderConverterImpl {
	return &OrderConverterImpl{}
}

func (OrderConverterImpl) ToModel(entity *domain.Order) *OrderModel {
	if entity == nil {
		return nil
	}

	return &OrderModel{
		ID:                 entity.ID,
		Status:             string(entity.Status),
		TotalPrice:         entity.TotalPrice,
		RegisteredAt:       entity.RegisteredAt,
		PaymentCompletedAt: entity.PaymentCompletedAt,
		CreatedAt:          entity.CreatedAt,
		UpdatedAt:          entity.UpdatedAt,
	}
}

func (OrderConverterImpl) ToEntity(model *OrderModel, products []OrderProductModel) *domain.Order {
	if model == nil {
		return nil
	}

	items := make([]domain.OrderProduct, 0, len(products))
	for _, p := range products {
		items = append(items, domain.OrderProduct{
			ID:            p.ID,
			OrderID:       p.OrderID,
			ProductID:     p.ProductID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		})
	}

	return &domain.Order{
		ID:                 model.ID,
		Status:             domain.OrderStatus(model.Status),
		TotalPrice:         model.TotalPrice,
		RegisteredAt:       model.RegisteredAt,
		PaymentCompletedAt: model.PaymentCompletedAt,
		Products:           items,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

type MailSendHistoryConverterImpl struct{}

func NewMailSendHistoryConverter() *MailSendHistoryConverterImpl {
	return &MailSendHistoryConverterImpl{}
}

func (MailSendHistoryConverterImpl) ToModel(entity *domain.MailSendHistory) *MailSendHistoryModel {
	if entity == nil {
		return nil
	}

	return &MailSendHistoryModel{
		ID:        entity.ID,
		FromEmail: entity.FromEmail,
		ToEmail:   entity.ToEmail,
		Subject:   entity.Subject,
		Content:   entity.Content,
		CreatedAt: entity.CreatedAt,
	}
}

func (MailSendHistoryConverterImpl) ToEntity(model *MailSendHistoryModel) *domain.MailSendHistory {
	if model == nil {
		return nil
	}

	return &domain.MailSendHistory{
		ID:        model.ID,
		FromEmail: model.FromEmail,
		ToEmail:   model.ToEmail,
		Subject:   model.Subject,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverter() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}

	return result
}
