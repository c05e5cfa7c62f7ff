package service

import (
	"context"
	"database/sql"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
)

type LikeService struct {
	likeRepo      repository.LikeRepository
	challengeRepo repository.ChallengeRepository
	resourceRepo  repository.ResourceRepository
	commentRepo   repository.CommentRepository
	db            *sql.DB
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	challengeRepo repository.ChallengeRepository,
	resourceRepo repository.ResourceRepository,
	commentRepo repository.CommentRepository,
	db *sql.DB,
) *LikeService {
	return &LikeService{
		likeRepo:      likeRepo,
		challengeRepo: challengeRepo,
		resourceRepo:  resourceRepo,
		commentRepo:   commentRepo,
		db:            db,
	}
}

// Toggle flips a like: an existing identical like is removed, otherwise one
// is inserted. Delete and insert run in one transaction; the insert absorbs
// a concurrent duplicate via the primary key, so three toggles always equal
// one toggle.
func (s *LikeService) Toggle(ctx context.Context, like model.Like) (model.ToggleOutcome, error) {
	if err := s.checkTargetExists(ctx, like.Target, like.TargetID); err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	removed, err := s.likeRepo.Delete(ctx, tx, like)
	if err != nil {
		return "", err
	}

	outcome := model.ToggleRemoved
	if !removed {
		if _, err := s.likeRepo.Insert(ctx, tx, like); err != nil {
			return "", err
		}
		outcome = model.ToggleAdded
	}

	if err := tx.Commit(); err != nil {
		return "", common.Errorf("failed to commit like toggle: %w", err)
	}
	return outcome, nil
}

func (s *LikeService) checkTargetExists(ctx context.Context, target model.LikeTarget, targetID string) error {
	var err error
	switch target {
	case model.LikeTargetChallenge:
		_, err = s.challengeRepo.FindByID(ctx, targetID)
	case model.LikeTargetResource:
		_, err = s.resourceRepo.FindByID(ctx, targetID)
	case model.LikeTargetComment:
		_, err = s.commentRepo.FindByID(ctx, targetID)
	default:
		return common.Errorf("unknown like target %q: %w", target, common.ErrBadRequest)
	}
	return err
}

func (s *LikeService) ListForTarget(ctx context.Context, target model.LikeTarget, targetID string) ([]model.Like, error) {
	return s.likeRepo.ListForTarget(ctx, target, targetID)
}

func (s *LikeService) CountsByTarget(ctx context.Context, target model.LikeTarget) ([]model.LikeCount, error) {
	return s.likeRepo.CountsByTarget(ctx, target)
}

func (s *LikeService) ListForUser(ctx context.Context, userID string) (map[model.LikeTarget][]model.Like, error) {
	return s.likeRepo.ListForUser(ctx, userID)
}
