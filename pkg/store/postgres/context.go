package postgres

import (
	"context"
	"database/sql"
)

type txKey struct{}

func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// Prepare prepares query on the transaction carried by ctx, or on db when there is none.
func Prepare(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	if tx := GetTransaction(ctx); tx != nil {
		return tx.PrepareContext(ctx, query)
	}
	return db.PrepareContext(ctx, query)
}
