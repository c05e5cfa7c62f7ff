package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"codequest/internal/common"
	"codequest/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likeServiceForToggle(t *testing.T, existing bool) (*LikeService, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	return NewLikeService(
		&mockLikeRepo{
			deleteFn: func(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
				return existing, nil
			},
			insertFn: func(ctx context.Context, tx *sql.Tx, like model.Like) (bool, error) {
				if existing {
					t.Fatal("insert must not run when the delete removed a like")
				}
				return true, nil
			},
		},
		&mockChallengeRepo{findByIDFn: func(ctx context.Context, id string) (*model.Challenge, error) {
			return &model.Challenge{ID: id}, nil
		}},
		&mockResourceRepo{},
		nil,
		db,
	), dbMock
}

func TestToggleAddsWhenAbsent(t *testing.T) {
	svc, dbMock := likeServiceForToggle(t, false)

	outcome, err := svc.Toggle(context.Background(), model.Like{
		UserID: "u-1", Target: model.LikeTargetChallenge, TargetID: "ch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ToggleAdded, outcome)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestToggleRemovesWhenPresent(t *testing.T) {
	svc, dbMock := likeServiceForToggle(t, true)

	outcome, err := svc.Toggle(context.Background(), model.Like{
		UserID: "u-1", Target: model.LikeTargetChallenge, TargetID: "ch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ToggleRemoved, outcome)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestToggleMissingTarget(t *testing.T) {
	svc := NewLikeService(
		&mockLikeRepo{},
		&mockChallengeRepo{findByIDFn: func(ctx context.Context, id string) (*model.Challenge, error) {
			return nil, common.ErrNotFound
		}},
		&mockResourceRepo{},
		nil,
		nil,
	)

	_, err := svc.Toggle(context.Background(), model.Like{
		UserID: "u-1", Target: model.LikeTargetChallenge, TargetID: "missing",
	})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestToggleUnknownTarget(t *testing.T) {
	svc := NewLikeService(&mockLikeRepo{}, &mockChallengeRepo{}, &mockResourceRepo{}, nil, nil)

	_, err := svc.Toggle(context.Background(), model.Like{
		UserID: "u-1", Target: "playlist", TargetID: "x",
	})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}
