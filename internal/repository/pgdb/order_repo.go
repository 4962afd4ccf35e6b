package pgdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Позиции заказа хранятся в order_products и всегда загружаются вместе с заказом.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет заказ и все его позиции в текущей транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (status, total_price, registered_at, payment_completed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.Status,
		model.TotalPrice,
		model.RegisteredAt,
		model.PaymentCompletedAt,
	).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: failed to insert order: %w", whereami.WhereAmI(), err)
	}

	itemsQuery := `
		INSERT INTO order_products (order_id, product_id, product_number, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	batch := &pgx.Batch{}
	for _, p := range order.Products {
		batch.Queue(itemsQuery, model.ID, p.ProductID, p.ProductNumber, p.Price)
	}

	br := tx.SendBatch(ctx, batch)
	items := make([]converter.OrderProductModel, 0, len(order.Products))
	for _, p := range order.Products {
		item := converter.OrderProductModel{
			OrderID:       model.ID,
			ProductID:     p.ProductID,
			ProductNumber: p.ProductNumber,
			Price:         p.Price,
		}
		if err := br.QueryRow().Scan(&item.ID); err != nil {
			br.Close()
			return nil, fmt.Errorf("%s: failed to insert order product: %w", whereami.WhereAmI(), err)
		}
		items = append(items, item)
	}

	if err := br.Close(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(model, items), nil
}

// GetByIDForUpdate загружает заказ и блокирует его строку до конца транзакции.
func (o *OrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, status, total_price, registered_at, payment_completed_at, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE;
	`

	var model converter.OrderModel
	if err := tx.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Status, &model.TotalPrice, &model.RegisteredAt,
		&model.PaymentCompletedAt, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: id %d", whereami.WhereAmI(), e.ErrOrderNotFound, id)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := o.getOrderProducts(ctx, []int64{model.ID})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(&model, items[model.ID]), nil
}

// UpdatePaymentCompleted фиксирует оплату. Обновляется только заказ в статусе CREATED,
// иначе возвращается e.ErrInvalidStatusTransition.
func (o *OrderRepo) UpdatePaymentCompleted(ctx context.Context, order *domain.Order) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE orders
		SET status = $1, payment_completed_at = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4;
	`

	result, err := tx.Exec(ctx, query,
		string(domain.OrderStatusPaymentCompleted),
		order.PaymentCompletedAt,
		order.ID,
		string(domain.OrderStatusCreated),
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w: order %d", whereami.WhereAmI(), e.ErrInvalidStatusTransition, order.ID)
	}

	return nil
}

// FindOrdersBy возвращает заказы в статусе status с payment_completed_at в [from, to)
// в порядке времени оплаты.
func (o *OrderRepo) FindOrdersBy(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, status, total_price, registered_at, payment_completed_at, created_at, updated_at
		FROM orders
		WHERE status = $1
		  AND payment_completed_at >= $2
		  AND payment_completed_at < $3
		ORDER BY payment_completed_at, id;
	`

	rows, err := tr.Executor(ctx, o.pool).Query(ctx, query, string(status), from, to)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.OrderModel, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.Status, &model.TotalPrice, &model.RegisteredAt,
			&model.PaymentCompletedAt, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
		ids = append(ids, model.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if len(models) == 0 {
		return []domain.Order{}, nil
	}

	items, err := o.getOrderProducts(ctx, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Order, 0, len(models))
	for i := range models {
		result = append(result, *o.conv.ToEntity(&models[i], items[models[i].ID]))
	}

	return result, nil
}

// getOrderProducts загружает позиции заказов одним запросом, сгруппированные по order_id.
func (o *OrderRepo) getOrderProducts(ctx context.Context, orderIDs []int64) (map[int64][]converter.OrderProductModel, error) {
	query := `
		SELECT id, order_id, product_id, product_number, price
		FROM order_products
		WHERE order_id = ANY($1)
		ORDER BY id;
	`

	rows, err := tr.Executor(ctx, o.pool).Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]converter.OrderProductModel, len(orderIDs))
	for rows.Next() {
		var item converter.OrderProductModel
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductNumber, &item.Price); err != nil {
			return nil, err
		}

		result[item.OrderID] = append(result[item.OrderID], item)
	}

	return result, rows.Err()
}
