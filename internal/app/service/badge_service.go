package service

import (
	"context"
	"database/sql"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/google/uuid"
)

type BadgeService struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
	db        *sql.DB
}

func NewBadgeService(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository, db *sql.DB) *BadgeService {
	return &BadgeService{badgeRepo: badgeRepo, userRepo: userRepo, db: db}
}

type BadgeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *BadgeService) Create(ctx context.Context, req BadgeRequest) (*model.Badge, error) {
	if req.Title == "" {
		return nil, common.Errorf("badge title is required: %w", common.ErrBadRequest)
	}
	badge := &model.Badge{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.badgeRepo.Create(ctx, badge); err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) Get(ctx context.Context, id string) (*model.Badge, error) {
	return s.badgeRepo.FindByID(ctx, id)
}

func (s *BadgeService) List(ctx context.Context, limit, offset int) ([]model.Badge, error) {
	return s.badgeRepo.List(ctx, limit, offset)
}

func (s *BadgeService) Update(ctx context.Context, id string, req BadgeRequest) (*model.Badge, error) {
	badge, err := s.badgeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		badge.Title = req.Title
	}
	if req.Description != "" {
		badge.Description = req.Description
	}
	if err := s.badgeRepo.Update(ctx, badge); err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) Delete(ctx context.Context, id string) error {
	return s.badgeRepo.Delete(ctx, id)
}

// Award grants a badge to a user. Granting a badge the user already
// holds is a no-op.
func (s *BadgeService) Award(ctx context.Context, userID, badgeID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.badgeRepo.FindByID(ctx, badgeID); err != nil {
		return err
	}
	return s.badgeRepo.GrantToUser(ctx, nil, userID, badgeID)
}
