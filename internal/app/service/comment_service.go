package service

import (
	"context"
	"database/sql"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/google/uuid"
)

type CommentService struct {
	commentRepo   repository.CommentRepository
	likeRepo      repository.LikeRepository
	userRepo      repository.UserRepository
	challengeRepo repository.ChallengeRepository
	resourceRepo  repository.ResourceRepository
	db            *sql.DB
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
	challengeRepo repository.ChallengeRepository,
	resourceRepo repository.ResourceRepository,
	db *sql.DB,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		likeRepo:      likeRepo,
		userRepo:      userRepo,
		challengeRepo: challengeRepo,
		resourceRepo:  resourceRepo,
		db:            db,
	}
}

type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

func (s *CommentService) Create(ctx context.Context, userID string, req CreateCommentRequest) (*model.Comment, error) {
	if req.Comment == "" {
		return nil, common.Errorf("comment text is required: %w", common.ErrBadRequest)
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:      uuid.NewString(),
		UserID:  userID,
		Comment: req.Comment,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*model.Comment, error) {
	return s.commentRepo.FindByID(ctx, id)
}

func (s *CommentService) List(ctx context.Context, limit, offset int) ([]model.Comment, error) {
	return s.commentRepo.List(ctx, limit, offset)
}

func (s *CommentService) Update(ctx context.Context, id string, req CreateCommentRequest) (*model.Comment, error) {
	if req.Comment == "" {
		return nil, common.Errorf("comment text is required: %w", common.ErrBadRequest)
	}
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Comment = req.Comment
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment, its likes first in the same transaction. Join
// rows on challenges/resources cascade at the schema level.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if _, err := s.commentRepo.FindByID(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.likeRepo.DeleteForComment(ctx, tx, id); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit comment deletion: %w", err)
	}
	return nil
}

func (s *CommentService) AttachToChallenge(ctx context.Context, challengeID, commentID string) error {
	if _, err := s.challengeRepo.FindByID(ctx, challengeID); err != nil {
		return err
	}
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		return err
	}
	return s.commentRepo.AttachToChallenge(ctx, challengeID, commentID)
}

func (s *CommentService) AttachToResource(ctx context.Context, resourceID, commentID string) error {
	if _, err := s.resourceRepo.FindByID(ctx, resourceID); err != nil {
		return err
	}
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		return err
	}
	return s.commentRepo.AttachToResource(ctx, resourceID, commentID)
}

func (s *CommentService) ListForChallenge(ctx context.Context, challengeID string) ([]model.Comment, error) {
	return s.commentRepo.ListForChallenge(ctx, challengeID)
}

func (s *CommentService) ListForResource(ctx context.Context, resourceID string) ([]model.Comment, error) {
	return s.commentRepo.ListForResource(ctx, resourceID)
}

func (s *CommentService) ListForUser(ctx context.Context, userID string) ([]model.Comment, error) {
	return s.commentRepo.ListForUser(ctx, userID)
}
