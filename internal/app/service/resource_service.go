package service

import (
	"context"
	"database/sql"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ResourceService struct {
	resourceRepo  repository.ResourceRepository
	challengeRepo repository.ChallengeRepository
	db            *sql.DB
}

func NewResourceService(resourceRepo repository.ResourceRepository, challengeRepo repository.ChallengeRepository, db *sql.DB) *ResourceService {
	return &ResourceService{resourceRepo: resourceRepo, challengeRepo: challengeRepo, db: db}
}

type ResourceRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	RewardPoints int      `json:"reward_points"`
	TagIDs       []string `json:"tag_ids,omitempty"`
}

func (s *ResourceService) Create(ctx context.Context, req ResourceRequest) (*model.Resource, error) {
	if req.Title == "" {
		return nil, common.Errorf("resource title is required: %w", common.ErrBadRequest)
	}
	if req.RewardPoints < 0 {
		return nil, common.Errorf("resource cost cannot be negative: %w", common.ErrBadRequest)
	}

	resource := &model.Resource{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Slug:         slug.Make(req.Title),
		Description:  req.Description,
		RewardPoints: req.RewardPoints,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.resourceRepo.Create(ctx, tx, resource); err != nil {
		return nil, err
	}
	if len(req.TagIDs) > 0 {
		if err := s.resourceRepo.SetTags(ctx, tx, resource.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit resource creation: %w", err)
	}

	resource.Tags, _ = s.resourceRepo.GetTags(ctx, resource.ID)
	return resource, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	resource, err := s.resourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resource.Tags, _ = s.resourceRepo.GetTags(ctx, resource.ID)
	return resource, nil
}

func (s *ResourceService) List(ctx context.Context, limit, offset int) ([]model.Resource, error) {
	return s.resourceRepo.List(ctx, limit, offset)
}

func (s *ResourceService) Filter(ctx context.Context, sortBy string) ([]model.Resource, error) {
	return s.resourceRepo.Filter(ctx, sortBy)
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.resourceRepo.Delete(ctx, id)
}

func (s *ResourceService) GetTags(ctx context.Context, id string) ([]model.Tag, error) {
	if _, err := s.resourceRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.resourceRepo.GetTags(ctx, id)
}

// RecommendedForChallenge lists resources that share a tag with the challenge.
func (s *ResourceService) RecommendedForChallenge(ctx context.Context, challengeID string) ([]model.Resource, error) {
	if _, err := s.challengeRepo.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.resourceRepo.RecommendedForChallenge(ctx, challengeID)
}
