package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendCreateNormalizesPair(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The larger id arrives first but is stored second.
	dbMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO friends (user_id1, user_id2) VALUES ($1, $2)`)).
		WithArgs("aaa", "zzz").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPgFriendRepository(db)
	require.NoError(t, repo.Create(context.Background(), "zzz", "aaa"))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestFriendDeleteReportsExistence(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	deletePattern := regexp.QuoteMeta(`DELETE FROM friends WHERE user_id1 = $1 AND user_id2 = $2`)

	dbMock.ExpectExec(deletePattern).
		WithArgs("aaa", "zzz").
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec(deletePattern).
		WithArgs("aaa", "zzz").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPgFriendRepository(db)

	removed, err := repo.Delete(context.Background(), "zzz", "aaa")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(context.Background(), "zzz", "aaa")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.NoError(t, dbMock.ExpectationsWereMet())
}
