package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"codequest/internal/common"
	"codequest/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateUniqueViolation(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewPgUserRepository(db)
	err = repo.Create(context.Background(), &model.User{ID: "u-1", Username: "alice", Email: "a@b.c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestUserFindByIDNotFound(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewPgUserRepository(db)
	_, err = repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCreditSolveReturnsPriorScore(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET score = score + $1, reward_points = reward_points + $1`)).
		WithArgs(10, "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(40))
	dbMock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewPgUserRepository(db)
	prior, err := repo.CreditSolve(context.Background(), tx, "u-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 40, prior)

	require.NoError(t, tx.Commit())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDebitRewardPoints(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	debitPattern := regexp.QuoteMeta(`UPDATE users SET reward_points = reward_points - $1`)

	// Balance covers the cost: one row updated.
	dbMock.ExpectBegin()
	dbMock.ExpectExec(debitPattern).
		WithArgs(30, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	repo := NewPgUserRepository(db)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	debited, err := repo.DebitRewardPoints(context.Background(), tx, "u-1", 30)
	require.NoError(t, err)
	assert.True(t, debited)
	require.NoError(t, tx.Commit())

	// Balance too low: the conditional update matches nothing.
	dbMock.ExpectBegin()
	dbMock.ExpectExec(debitPattern).
		WithArgs(100, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectRollback()

	tx, err = db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	debited, err = repo.DebitRewardPoints(context.Background(), tx, "u-1", 100)
	require.NoError(t, err)
	assert.False(t, debited)
	require.NoError(t, tx.Rollback())

	assert.NoError(t, dbMock.ExpectationsWereMet())
}
