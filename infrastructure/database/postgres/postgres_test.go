package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Connection{DB: db}, mock
}

func TestConnection_RunInTransaction_Commit(t *testing.T) {
	conn, mock := newMockConnection(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE credentials").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE credentials SET kind = 'user'")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnection_RunInTransaction_Rollback(t *testing.T) {
	conn, mock := newMockConnection(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnection_Migrate(t *testing.T) {
	conn, mock := newMockConnection(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS credentials")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, conn.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, Schema, "uq_metric_snapshots_natural_key")
}
