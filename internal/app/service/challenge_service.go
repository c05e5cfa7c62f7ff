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

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	tagRepo       repository.TagRepository
	db            *sql.DB
}

func NewChallengeService(challengeRepo repository.ChallengeRepository, tagRepo repository.TagRepository, db *sql.DB) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo, tagRepo: tagRepo, db: db}
}

type ChallengeRequest struct {
	Title          string                    `json:"title"`
	Description    string                    `json:"description"`
	Input          string                    `json:"input"`
	ExpectedOutput string                    `json:"expected_output"`
	Difficulty     model.ChallengeDifficulty `json:"difficulty"`
	Language       string                    `json:"language"`
	TagIDs         []string                  `json:"tag_ids,omitempty"`
}

func (s *ChallengeService) validate(req ChallengeRequest) error {
	if req.Title == "" || req.Description == "" || req.ExpectedOutput == "" {
		return common.Errorf("title, description and expected output are required: %w", common.ErrBadRequest)
	}
	switch req.Difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return common.Errorf("invalid difficulty %q: %w", req.Difficulty, common.ErrBadRequest)
	}
	return nil
}

func (s *ChallengeService) Create(ctx context.Context, req ChallengeRequest) (*model.Challenge, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	challenge := &model.Challenge{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Slug:           slug.Make(req.Title),
		Description:    req.Description,
		Input:          req.Input,
		ExpectedOutput: req.ExpectedOutput,
		Difficulty:     req.Difficulty,
		Language:       req.Language,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.challengeRepo.Create(ctx, tx, challenge); err != nil {
		return nil, err
	}
	if len(req.TagIDs) > 0 {
		if err := s.challengeRepo.SetTags(ctx, tx, challenge.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit challenge creation: %w", err)
	}

	challenge.Tags, _ = s.challengeRepo.GetTags(ctx, challenge.ID)
	return challenge, nil
}

func (s *ChallengeService) Get(ctx context.Context, id string) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	challenge.Tags, _ = s.challengeRepo.GetTags(ctx, challenge.ID)
	return challenge, nil
}

func (s *ChallengeService) GetBySlug(ctx context.Context, slugStr string) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.FindBySlug(ctx, slugStr)
	if err != nil {
		return nil, err
	}
	challenge.Tags, _ = s.challengeRepo.GetTags(ctx, challenge.ID)
	return challenge, nil
}

func (s *ChallengeService) List(ctx context.Context, limit, offset int) ([]model.Challenge, error) {
	return s.challengeRepo.List(ctx, limit, offset)
}

func (s *ChallengeService) Filter(ctx context.Context, filter repository.ChallengeFilter) ([]model.Challenge, error) {
	if filter.Difficulty != "" {
		switch filter.Difficulty {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return nil, common.Errorf("invalid difficulty %q: %w", filter.Difficulty, common.ErrBadRequest)
		}
	}
	return s.challengeRepo.Filter(ctx, filter)
}

func (s *ChallengeService) Update(ctx context.Context, id string, req ChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		challenge.Title = req.Title
		challenge.Slug = slug.Make(req.Title)
	}
	if req.Description != "" {
		challenge.Description = req.Description
	}
	if req.Input != "" {
		challenge.Input = req.Input
	}
	if req.ExpectedOutput != "" {
		challenge.ExpectedOutput = req.ExpectedOutput
	}
	if req.Difficulty != "" {
		switch req.Difficulty {
		case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		default:
			return nil, common.Errorf("invalid difficulty %q: %w", req.Difficulty, common.ErrBadRequest)
		}
		challenge.Difficulty = req.Difficulty
	}
	if req.Language != "" {
		challenge.Language = req.Language
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.challengeRepo.Update(ctx, tx, challenge); err != nil {
		return nil, err
	}
	if req.TagIDs != nil {
		if err := s.challengeRepo.SetTags(ctx, tx, challenge.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit challenge update: %w", err)
	}
	challenge.Tags, _ = s.challengeRepo.GetTags(ctx, challenge.ID)
	return challenge, nil
}

func (s *ChallengeService) Delete(ctx context.Context, id string) error {
	return s.challengeRepo.Delete(ctx, id)
}

func (s *ChallengeService) GetTags(ctx context.Context, id string) ([]model.Tag, error) {
	if _, err := s.challengeRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.challengeRepo.GetTags(ctx, id)
}
