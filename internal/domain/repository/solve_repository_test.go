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

func TestSolveCreateDuplicateBecomesConflict(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectBegin()
	dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_challenges`)).
		WithArgs("u-1", "ch-1", "code").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	dbMock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	repo := NewPgSolveRepository(db)
	err = repo.Create(context.Background(), tx, &model.SolveRecord{
		UserID: "u-1", ChallengeID: "ch-1", Solution: "code",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestSolveExists(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("u-1", "ch-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPgSolveRepository(db)
	exists, err := repo.Exists(context.Background(), "u-1", "ch-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
