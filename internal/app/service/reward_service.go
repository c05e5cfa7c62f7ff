package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
	"codequest/internal/platform/config"
)

type RewardService struct {
	userRepo     repository.UserRepository
	resourceRepo repository.ResourceRepository
	purchaseRepo repository.PurchaseRepository
	db           *sql.DB
	now          func() time.Time // Injectable clock for tests
}

func NewRewardService(
	userRepo repository.UserRepository,
	resourceRepo repository.ResourceRepository,
	purchaseRepo repository.PurchaseRepository,
	db *sql.DB,
) *RewardService {
	return &RewardService{
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		purchaseRepo: purchaseRepo,
		db:           db,
		now:          time.Now,
	}
}

type ClaimRewardRequest struct {
	Points int `json:"points"`
}

// ClaimDaily credits points and resets the cooldown to an absolute expiry so
// the timer survives restarts.
func (s *RewardService) ClaimDaily(ctx context.Context, userID string, req ClaimRewardRequest) (time.Time, error) {
	if req.Points <= 0 {
		return time.Time{}, common.Errorf("points must be positive: %w", common.ErrBadRequest)
	}
	expiry := s.now().Add(config.AppConfig.RewardCooldown)
	if err := s.userRepo.CreditReward(ctx, userID, req.Points, expiry); err != nil {
		return time.Time{}, err
	}
	log.Printf("User %s claimed %d reward points, cooldown until %s", userID, req.Points, expiry.Format(time.RFC3339))
	return expiry, nil
}

// RemainingCooldown reports hours until the next claim; never negative.
func (s *RewardService) RemainingCooldown(ctx context.Context, userID string) (float64, error) {
	expiry, err := s.userRepo.GetRewardTimer(ctx, userID)
	if err != nil {
		return 0, err
	}
	remaining := expiry.Sub(s.now()).Hours()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Purchase redeems reward points for a resource. The balance check and debit
// are one conditional update inside the transaction, so concurrent purchases
// for the same user cannot double-spend; the purchases primary key rejects a
// repeat redemption.
func (s *RewardService) Purchase(ctx context.Context, userID, resourceID string) (*model.Purchase, error) {
	resource, err := s.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("resource not found: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to load resource: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if resource.RewardPoints > 0 {
		debited, err := s.userRepo.DebitRewardPoints(ctx, tx, userID, resource.RewardPoints)
		if err != nil {
			return nil, common.Errorf("failed to debit reward points: %w", err)
		}
		if !debited {
			// Either the user is missing or the balance does not cover the
			// cost; disambiguate for the caller.
			if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
				return nil, err
			}
			return nil, common.Errorf("not enough reward points: %w", common.ErrConflict)
		}
	}

	purchase := &model.Purchase{UserID: userID, ResourceID: resourceID, PurchaseDate: s.now()}
	if err := s.purchaseRepo.Create(ctx, tx, purchase); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit purchase: %w", err)
	}
	log.Printf("User %s purchased resource %s for %d points", userID, resourceID, resource.RewardPoints)
	return purchase, nil
}

// ListPurchases returns stored purchases plus a synthesized entry for every
// free resource the user has not explicitly purchased.
func (s *RewardService) ListPurchases(ctx context.Context, userID string) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]bool, len(purchases))
	for _, p := range purchases {
		owned[p.ResourceID] = true
	}

	free, err := s.resourceRepo.ListFree(ctx)
	if err != nil {
		return nil, err
	}
	for _, resource := range free {
		if !owned[resource.ID] {
			purchases = append(purchases, model.Purchase{
				UserID:       userID,
				ResourceID:   resource.ID,
				PurchaseDate: s.now(),
			})
		}
	}
	return purchases, nil
}
