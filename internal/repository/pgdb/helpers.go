package pgdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolation = "23505"

// postgresDuplicate сообщает, что вставка нарушила уникальное ограничение.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// postgresConstraint возвращает имя нарушенного ограничения, если оно известно.
func postgresConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
