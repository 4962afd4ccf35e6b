package converter

// ProductInfoRedisModel — представление товара в кэше списка продаж.
type ProductInfoRedisModel struct {
	ID            int64  `json:"id"`
	ProductNumber string `json:"product_number"`
	Type          string `json:"type"`
	SellingStatus string `json:"selling_status"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}
