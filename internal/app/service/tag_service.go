package service

import (
	"context"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"

	"github.com/google/uuid"
)

type TagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

type TagRequest struct {
	Name string `json:"name"`
}

func (s *TagService) Create(ctx context.Context, req TagRequest) (*model.Tag, error) {
	if req.Name == "" {
		return nil, common.Errorf("tag name is required: %w", common.ErrBadRequest)
	}
	tag := &model.Tag{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Get(ctx context.Context, id string) (*model.Tag, error) {
	return s.tagRepo.FindByID(ctx, id)
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return s.tagRepo.List(ctx)
}
