package usecase

import (
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
)

// PRODUCT USECASE

// CreateProductReq описывает запрос на регистрацию нового товара.
type CreateProductReq struct {
	Type          domain.ProductType
	SellingStatus domain.SellingStatus
	Name          string
	Price         int64
}

// ProductInfo содержит информацию о товаре для внешнего использования.
type ProductInfo struct {
	ID            int64
	ProductNumber string
	Type          domain.ProductType
	SellingStatus domain.SellingStatus
	Name          string
	Price         int64
}

// ORDER USECASE

// CreateOrderReq описывает заказ по номерам товаров. Повторы номеров допустимы.
type CreateOrderReq struct {
	ProductNumbers []string
	RegisteredAt   time.Time
}

type CompletePaymentReq struct {
	OrderID     int64
	CompletedAt time.Time
}

// FindOrdersReq задаёт выборку заказов по статусу и времени оплаты в полуинтервале [From, To).
type FindOrdersReq struct {
	From   time.Time
	To     time.Time
	Status domain.OrderStatus
}

type OrderInfo struct {
	ID                 int64
	Status             domain.OrderStatus
	TotalPrice         int64
	RegisteredAt       time.Time
	PaymentCompletedAt *time.Time
	Products           []OrderProductInfo
}

type OrderProductInfo struct {
	ProductID     int64
	ProductNumber string
	Price         int64
}

// MAIL USECASE

type SendMailReq struct {
	FromEmail string
	ToEmail   string
	Subject   string
	Content   string
}

// OrderStatisticsReq описывает запрос на отправку статистики продаж за день.
type OrderStatisticsReq struct {
	OrderDate time.Time
	Email     string
}

type OrderStatisticsRes struct {
	OrderDate  time.Time
	OrderCount int
	TotalPrice int64
	ReportKey  string
}

// INFRASTUCTURE

type UploadReportReq struct {
	Date time.Time
	Data []byte
}

type UploadReportRes struct {
	ReportKey string
}

type WriteRawMessageReq struct {
	Key       string
	EventType OutboxEventType
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
	// Failed — брокер отверг событие без шанса на успех при повторе
	Failed OutboxStatus = "FAILED"
)

type OutboxEventType string

const (
	OrderCreated          OutboxEventType = "ORDER_CREATED"
	OrderPaymentCompleted OutboxEventType = "ORDER_PAYMENT_COMPLETED"
)

// OutboxEvent — событие, записанное в одной транзакции с изменением заказа.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewCreateProductReq(productType domain.ProductType, status domain.SellingStatus, name string, price int64) *CreateProductReq {
	return &CreateProductReq{
		Type:          productType,
		SellingStatus: status,
		Name:          name,
		Price:         price,
	}
}

func NewProductInfo(p *domain.Product) ProductInfo {
	return ProductInfo{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Type:          p.Type,
		SellingStatus: p.SellingStatus,
		Name:          p.Name,
		Price:         p.Price,
	}
}

func NewCreateOrderReq(productNumbers []string, registeredAt time.Time) *CreateOrderReq {
	return &CreateOrderReq{
		ProductNumbers: productNumbers,
		RegisteredAt:   registeredAt,
	}
}

func NewCompletePaymentReq(orderID int64, completedAt time.Time) *CompletePaymentReq {
	return &CompletePaymentReq{
		OrderID:     orderID,
		CompletedAt: completedAt,
	}
}

func NewFindOrdersReq(from, to time.Time, status domain.OrderStatus) *FindOrdersReq {
	return &FindOrdersReq{
		From:   from,
		To:     to,
		Status: status,
	}
}

func NewOrderInfo(o *domain.Order) OrderInfo {
	products := make([]OrderProductInfo, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, OrderProductInfo{
			ProductID:     p.ProductID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		})
	}

	return OrderInfo{
		ID:                 o.ID,
		Status:             o.Status,
		TotalPrice:         o.TotalPrice,
		RegisteredAt:       o.RegisteredAt,
		PaymentCompletedAt: o.PaymentCompletedAt,
		Products:           products,
	}
}

func NewSendMailReq(from, to, subject, content string) *SendMailReq {
	return &SendMailReq{
		FromEmail: from,
		ToEmail:   to,
		Subject:   subject,
		Content:   content,
	}
}

func NewOrderStatisticsReq(orderDate time.Time, email string) *OrderStatisticsReq {
	return &OrderStatisticsReq{
		OrderDate: orderDate,
		Email:     email,
	}
}

func NewUploadReportReq(date time.Time, data []byte) *UploadReportReq {
	return &UploadReportReq{
		Date: date,
		Data: data,
	}
}

func NewUploadReportRes(key string) *UploadReportRes {
	return &UploadReportRes{ReportKey: key}
}

func NewWriteRawMessageReq(key string, eventType OutboxEventType, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, orderID int64, payload []byte, createdAt time.Time) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: createdAt,
	}
}
