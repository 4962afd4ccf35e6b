package domain

import "time"

// ProductType описывает тип товара
type ProductType string

const (
	ProductTypeHandmade ProductType = "HANDMADE" // напитки, которые готовятся на месте
	ProductTypeBottle   ProductType = "BOTTLE"
	ProductTypeBakery   ProductType = "BAKERY"
)

// IsValid сообщает, известен ли тип товара.
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeHandmade, ProductTypeBottle, ProductTypeBakery:
		return true
	default:
		return false
	}
}

// SellingStatus описывает статус продажи товара
type SellingStatus string

const (
	SellingStatusSelling     SellingStatus = "SELLING"
	SellingStatusHold        SellingStatus = "HOLD"
	SellingStatusStopSelling SellingStatus = "STOP_SELLING"
)

func (s SellingStatus) IsValid() bool {
	switch s {
	case SellingStatusSelling, SellingStatusHold, SellingStatusStopSelling:
		return true
	default:
		return false
	}
}

// ForDisplay возвращает статусы товаров, которые показываются в киоске.
func ForDisplay() []SellingStatus {
	return []SellingStatus{SellingStatusSelling, SellingStatusHold}
}

// Product описывает товар каталога
type Product struct {
	ID            int64
	ProductNumber string
	Type          ProductType
	SellingStatus SellingStatus
	Name          string
	Price         int64 // Цена хранится в вонах
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(productNumber string, productType ProductType, sellingStatus SellingStatus, name string, price int64) *Product {
	return &Product{
		ProductNumber: productNumber,
		Type:          productType,
		SellingStatus: sellingStatus,
		Name:          name,
		Price:         price,
	}
}
