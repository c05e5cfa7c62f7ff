package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/platform/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewardTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{RewardCooldown: 24 * time.Hour}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestClaimDailySetsAbsoluteExpiry(t *testing.T) {
	rewardTestConfig(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var gotPoints int
	var gotExpiry time.Time
	svc := NewRewardService(
		&mockUserRepo{creditRewardFn: func(ctx context.Context, userID string, points int, expiry time.Time) error {
			gotPoints = points
			gotExpiry = expiry
			return nil
		}},
		&mockResourceRepo{}, &mockPurchaseRepo{}, nil,
	)
	svc.now = func() time.Time { return now }

	expiry, err := svc.ClaimDaily(context.Background(), "u-1", ClaimRewardRequest{Points: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, gotPoints)
	assert.Equal(t, now.Add(24*time.Hour), gotExpiry)
	assert.Equal(t, gotExpiry, expiry)
}

func TestClaimDailyRejectsNonPositivePoints(t *testing.T) {
	rewardTestConfig(t)
	svc := NewRewardService(&mockUserRepo{}, &mockResourceRepo{}, &mockPurchaseRepo{}, nil)

	_, err := svc.ClaimDaily(context.Background(), "u-1", ClaimRewardRequest{Points: 0})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestRemainingCooldownNeverNegative(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := NewRewardService(
		&mockUserRepo{getRewardTimerFn: func(ctx context.Context, userID string) (time.Time, error) {
			return now.Add(-3 * time.Hour), nil // Expired in the past.
		}},
		&mockResourceRepo{}, &mockPurchaseRepo{}, nil,
	)
	svc.now = func() time.Time { return now }

	hours, err := svc.RemainingCooldown(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Zero(t, hours)

	svc.userRepo = &mockUserRepo{getRewardTimerFn: func(ctx context.Context, userID string) (time.Time, error) {
		return now.Add(6 * time.Hour), nil
	}}
	hours, err = svc.RemainingCooldown(context.Background(), "u-1")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, hours, 0.001)
}

func TestPurchaseDebitsAndRecords(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	var debitedCost int
	var created *model.Purchase

	svc := NewRewardService(
		&mockUserRepo{debitFn: func(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
			debitedCost = cost
			return true, nil
		}},
		&mockResourceRepo{findByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			return &model.Resource{ID: id, Title: "Dynamic Programming Guide", RewardPoints: 30}, nil
		}},
		&mockPurchaseRepo{createFn: func(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error {
			created = purchase
			return nil
		}},
		db,
	)

	purchase, err := svc.Purchase(context.Background(), "u-1", "res-1")
	require.NoError(t, err)

	assert.Equal(t, 30, debitedCost)
	require.NotNil(t, created)
	assert.Equal(t, "u-1", purchase.UserID)
	assert.Equal(t, "res-1", purchase.ResourceID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	svc := NewRewardService(
		&mockUserRepo{
			debitFn: func(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
				return false, nil
			},
			findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
				return &model.User{ID: id, RewardPoints: 5}, nil
			},
		},
		&mockResourceRepo{findByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			return &model.Resource{ID: id, RewardPoints: 30}, nil
		}},
		&mockPurchaseRepo{createFn: func(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error {
			t.Fatal("purchase must not be recorded when the debit fails")
			return nil
		}},
		db,
	)

	_, err = svc.Purchase(context.Background(), "u-1", "res-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestPurchaseMissingUser(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	svc := NewRewardService(
		&mockUserRepo{
			debitFn: func(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
				return false, nil
			},
			findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
				return nil, common.ErrNotFound
			},
		},
		&mockResourceRepo{findByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			return &model.Resource{ID: id, RewardPoints: 30}, nil
		}},
		&mockPurchaseRepo{},
		db,
	)

	_, err = svc.Purchase(context.Background(), "ghost", "res-1")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestPurchaseFreeResourceSkipsDebit(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	svc := NewRewardService(
		&mockUserRepo{debitFn: func(ctx context.Context, tx *sql.Tx, userID string, cost int) (bool, error) {
			t.Fatal("free resources must not touch the balance")
			return false, nil
		}},
		&mockResourceRepo{findByIDFn: func(ctx context.Context, id string) (*model.Resource, error) {
			return &model.Resource{ID: id, RewardPoints: 0}, nil
		}},
		&mockPurchaseRepo{createFn: func(ctx context.Context, tx *sql.Tx, purchase *model.Purchase) error {
			return nil
		}},
		db,
	)

	_, err = svc.Purchase(context.Background(), "u-1", "res-free")
	require.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestListPurchasesSynthesizesFreeResources(t *testing.T) {
	svc := NewRewardService(
		&mockUserRepo{},
		&mockResourceRepo{listFreeFn: func(ctx context.Context) ([]model.Resource, error) {
			return []model.Resource{{ID: "res-free"}, {ID: "res-owned"}}, nil
		}},
		&mockPurchaseRepo{listForUserFn: func(ctx context.Context, userID string) ([]model.Purchase, error) {
			return []model.Purchase{{UserID: userID, ResourceID: "res-owned"}}, nil
		}},
		nil,
	)

	purchases, err := svc.ListPurchases(context.Background(), "u-1")
	require.NoError(t, err)

	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ResourceID)
	}
	assert.ElementsMatch(t, []string{"res-owned", "res-free"}, ids)
}
