package tr

import (
	"context"

	"github.com/DRSN-tech/cafe-kiosk/pkg/e"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

// TxFromCtx извлекает открытую менеджером транзакцию из контекста.
func TxFromCtx(ctx context.Context) (trmpgx.Tr, error) {
	tx := trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, nil)
	if tx == nil {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// Executor возвращает текущую транзакцию из контекста или сам пул, если транзакции нет.
func Executor(ctx context.Context, db trmpgx.Tr) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, db)
}
