package postgres

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoot(t *testing.T) {
	t.Run("creates every table", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for _, q := range bootQueries {
			mock.ExpectExec(regexp.QuoteMeta(q)).WillReturnResult(sqlmock.NewResult(0, 0))
		}

		require.NoError(t, Boot(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(bootQueries[0])).WillReturnError(fmt.Errorf("permission denied"))

		err = Boot(context.Background(), db)

		assert.ErrorContains(t, err, "permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewDB_EmptyDSN(t *testing.T) {
	db, err := NewDB(context.Background(), Settings{})

	assert.Nil(t, db)
	assert.Error(t, err)
}

func TestTransactionContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Nil(t, GetTransaction(context.Background()))

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta("SELECT 1"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := WithTransaction(context.Background(), tx)
	assert.Same(t, tx, GetTransaction(ctx))

	stmt, err := Prepare(ctx, db, "SELECT 1")
	require.NoError(t, err)
	require.NoError(t, stmt.Close())
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
