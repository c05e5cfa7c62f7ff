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

func storedChallenge() *model.Challenge {
	return &model.Challenge{
		ID:             "c-1",
		Title:          "Two Sum",
		Slug:           "two-sum",
		Description:    "Find two numbers that add up to a target.",
		Input:          "2 7 11 15\n9",
		ExpectedOutput: "0 1",
		Difficulty:     model.DifficultyEasy,
	}
}

func TestChallengeUpdateWritesRowAndTagsInOneTransaction(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	var updateTx, tagsTx *sql.Tx
	repo := &mockChallengeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Challenge, error) {
			return storedChallenge(), nil
		},
		updateFn: func(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error {
			updateTx = tx
			return nil
		},
		setTagsFn: func(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error {
			tagsTx = tx
			return nil
		},
		getTagsFn: func(ctx context.Context, challengeID string) ([]model.Tag, error) {
			return []model.Tag{{ID: "t-1", Name: "arrays"}}, nil
		},
	}
	svc := NewChallengeService(repo, &mockTagRepo{}, db)

	updated, err := svc.Update(context.Background(), "c-1", ChallengeRequest{
		Title:  "Two Sum II",
		TagIDs: []string{"t-1"},
	})
	require.NoError(t, err)

	require.NotNil(t, updateTx, "row update must run inside the transaction")
	assert.Same(t, updateTx, tagsTx, "tag replacement must share the row update's transaction")
	assert.Equal(t, "two-sum-ii", updated.Slug)
	assert.Len(t, updated.Tags, 1)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestChallengeUpdateRollsBackWhenTagsFail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	repo := &mockChallengeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Challenge, error) {
			return storedChallenge(), nil
		},
		updateFn: func(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error {
			return nil
		},
		setTagsFn: func(ctx context.Context, tx *sql.Tx, challengeID string, tagIDs []string) error {
			return errors.New("tag insert failed")
		},
	}
	svc := NewChallengeService(repo, &mockTagRepo{}, db)

	_, err = svc.Update(context.Background(), "c-1", ChallengeRequest{TagIDs: []string{"t-missing"}})
	require.Error(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestChallengeUpdateRejectsInvalidDifficulty(t *testing.T) {
	repo := &mockChallengeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Challenge, error) {
			return storedChallenge(), nil
		},
	}
	svc := NewChallengeService(repo, &mockTagRepo{}, nil)

	_, err := svc.Update(context.Background(), "c-1", ChallengeRequest{Difficulty: "impossible"})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}
