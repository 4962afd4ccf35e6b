package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            int64      `db:"id"`
	ProductNumber string     `db:"product_number"`
	Type          string     `db:"type"`
	SellingStatus string     `db:"selling_status"`
	Name          string     `db:"name"`
	Price         int64      `db:"price"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID                 int64      `db:"id"`
	Status             string     `db:"status"`
	TotalPrice         int64      `db:"total_price"`
	RegisteredAt       time.Time  `db:"registered_at"`
	PaymentCompletedAt *time.Time `db:"payment_completed_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at"`
}

// OrderProductModel представляет запись таблицы order_products в PostgreSQL.
type OrderProductModel struct {
	ID            int64  `db:"id"`
	OrderID       int64  `db:"order_id"`
	ProductID     int64  `db:"product_id"`
	ProductNumber string `db:"product_number"`
	Price         int64  `db:"price"`
}

// MailSendHistoryModel представляет запись таблицы mail_send_history в PostgreSQL.
type MailSendHistoryModel struct {
	ID        int64     `db:"id"`
	FromEmail string    `db:"from_email"`
	ToEmail   string    `db:"to_email"`
	Subject   string    `db:"subject"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
