package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/cafe-kiosk/internal/domain"
	"github.com/DRSN-tech/cafe-kiosk/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	"github.com/DRSN-tech/cafe-kiosk/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productNumberConstraint = "products_product_number_key"

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create сохраняет товар. Повтор номера возвращает e.ErrDuplicateProductNumber.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (product_number, type, selling_status, name, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, query,
		model.ProductNumber,
		model.Type,
		model.SellingStatus,
		model.Name,
		model.Price,
	).Scan(&model.ID, &model.CreatedAt, &model.UpdatedAt); err != nil {
		if postgresDuplicate(err) && postgresConstraint(err) == productNumberConstraint {
			return nil, fmt.Errorf("%s: %w: %s", whereami.WhereAmI(), e.ErrDuplicateProductNumber, model.ProductNumber)
		}

		return nil, fmt.Errorf("%s: failed to insert product: %w", whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// GetLastProductNumber возвращает наибольший номер в каталоге.
// Номера сравниваются сначала по длине, чтобы "1000" оказался после "999".
func (p *ProductRepo) GetLastProductNumber(ctx context.Context) (string, bool, error) {
	query := `
		SELECT product_number
		FROM products
		ORDER BY length(product_number) DESC, product_number DESC
		LIMIT 1;
	`

	var number string
	err := tr.Executor(ctx, p.pool).QueryRow(ctx, query).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}

		return "", false, e.Wrap(whereami.WhereAmI(), err)
	}

	return number, true, nil
}

// GetBySellingStatuses возвращает товары с одним из статусов продажи в порядке регистрации.
func (p *ProductRepo) GetBySellingStatuses(ctx context.Context, statuses []domain.SellingStatus) ([]domain.Product, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query := `
		SELECT id, product_number, type, selling_status, name, price, created_at, updated_at
		FROM products
		WHERE selling_status = ANY($1)
		ORDER BY id;
	`

	return p.queryProducts(ctx, query, values)
}

// GetByProductNumbers возвращает товары с указанными номерами. Отсутствующие номера пропускаются.
func (p *ProductRepo) GetByProductNumbers(ctx context.Context, numbers []string) ([]domain.Product, error) {
	query := `
		SELECT id, product_number, type, selling_status, name, price, created_at, updated_at
		FROM products
		WHERE product_number = ANY($1)
		ORDER BY id;
	`

	return p.queryProducts(ctx, query, numbers)
}

func (p *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := tr.Executor(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(
			&model.ID, &model.ProductNumber, &model.Type, &model.SellingStatus,
			&model.Name, &model.Price, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
