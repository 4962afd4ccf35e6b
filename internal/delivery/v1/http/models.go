package http

import (
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/usecase"
	"github.com/shopspring/decimal"
)

// PRODUCTS

type CreateProductRequest struct {
	Type          string          `json:"type" example:"HANDMADE"`
	SellingStatus string          `json:"sellingStatus" example:"SELLING"`
	Name          string          `json:"name" example:"americano"`
	Price         decimal.Decimal `json:"price" swaggertype:"integer" example:"4000"`
}

type ProductResponse struct {
	ID            int64  `json:"id"`
	ProductNumber string `json:"productNumber"`
	Type          string `json:"type"`
	SellingStatus string `json:"sellingStatus"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}

// ORDERS

type CreateOrderRequest struct {
	ProductNumbers []string   `json:"productNumbers" example:"001,002"`
	RegisteredAt   *time.Time `json:"registeredAt,omitempty"`
}

type CompletePaymentRequest struct {
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type OrderProductResponse struct {
	ProductID     int64  `json:"productId"`
	ProductNumber string `json:"productNumber"`
	Price         int64  `json:"price"`
}

type OrderResponse struct {
	ID                 int64                  `json:"id"`
	Status             string                 `json:"status"`
	TotalPrice         int64                  `json:"totalPrice"`
	RegisteredAt       time.Time              `json:"registeredAt"`
	PaymentCompletedAt *time.Time             `json:"paymentCompletedAt"`
	Products           []OrderProductResponse `json:"products"`
}

type OrderStatisticsRequest struct {
	OrderDate string `json:"orderDate" example:"2026-03-05"`
	Email     string `json:"email" example:"owner@cafekiosk.local"`
}

type OrderStatisticsResponse struct {
	OrderDate  string `json:"orderDate"`
	OrderCount int    `json:"orderCount"`
	TotalPrice int64  `json:"totalPrice"`
	ReportKey  string `json:"reportKey"`
}

// MAIL

type SendMailRequest struct {
	FromEmail string `json:"fromEmail"`
	ToEmail   string `json:"toEmail"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
}

type SendMailResponse struct {
	Sent bool `json:"sent"`
}

// MAPPERS

func toProductResponse(p *usecase.ProductInfo) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Type:          string(p.Type),
		SellingStatus: string(p.SellingStatus),
		Name:          p.Name,
		Price:         p.Price,
	}
}

func toArrProductResponse(products []usecase.ProductInfo) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = toProductResponse(&products[i])
	}

	return res
}

func toOrderResponse(o *usecase.OrderInfo) OrderResponse {
	products := make([]OrderProductResponse, len(o.Products))
	for i, p := range o.Products {
		products[i] = OrderProductResponse{
			ProductID:     p.ProductID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		}
	}

	return OrderResponse{
		ID:                 o.ID,
		Status:             string(o.Status),
		TotalPrice:         o.TotalPrice,
		RegisteredAt:       o.RegisteredAt,
		PaymentCompletedAt: o.PaymentCompletedAt,
		Products:           products,
	}
}

func toArrOrderResponse(orders []usecase.OrderInfo) []OrderResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = toOrderResponse(&orders[i])
	}

	return res
}
