package service

import (
	"context"

	"codequest/internal/common"
	"codequest/internal/common/security"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
)

type UserService struct {
	userRepo  repository.UserRepository
	badgeRepo repository.BadgeRepository
}

func NewUserService(userRepo repository.UserRepository, badgeRepo repository.BadgeRepository) *UserService {
	return &UserService{userRepo: userRepo, badgeRepo: badgeRepo}
}

type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) Search(ctx context.Context, query string) ([]model.User, error) {
	if query == "" {
		return nil, common.Errorf("search query is required: %w", common.ErrBadRequest)
	}
	users, err := s.userRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := security.HashPassword(req.Password)
		if err != nil {
			return nil, common.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) ListBadges(ctx context.Context, userID string) ([]model.Badge, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.badgeRepo.ListForUser(ctx, userID)
}
