package service

import (
	"context"
	"errors"

	"codequest/internal/common"
	"codequest/internal/domain/model"
	"codequest/internal/domain/repository"
)

type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{friendRepo: friendRepo, userRepo: userRepo}
}

// AddFriend befriends userID with the user behind friendUsername. The
// friendship is symmetric; the repository's normalized key rejects the pair
// in either order.
func (s *FriendService) AddFriend(ctx context.Context, userID, friendUsername string) (*model.Friendship, error) {
	friend, err := s.userRepo.FindByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("user not found: %w", common.ErrNotFound)
		}
		return nil, common.Errorf("failed to find user: %w", err)
	}
	if friend.ID == userID {
		return nil, common.Errorf("cannot add yourself as a friend: %w", common.ErrBadRequest)
	}

	if err := s.friendRepo.Create(ctx, userID, friend.ID); err != nil {
		return nil, err
	}
	return &model.Friendship{UserID1: userID, UserID2: friend.ID}, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendUsername string) error {
	friend, err := s.userRepo.FindByUsername(ctx, friendUsername)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.Errorf("user not found: %w", common.ErrNotFound)
		}
		return common.Errorf("failed to find user: %w", err)
	}
	if friend.ID == userID {
		return common.Errorf("cannot remove yourself as a friend: %w", common.ErrBadRequest)
	}

	removed, err := s.friendRepo.Delete(ctx, userID, friend.ID)
	if err != nil {
		return err
	}
	if !removed {
		return common.Errorf("not friends: %w", common.ErrConflict)
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range friends {
		friends[i].HashedPassword = ""
	}
	return friends, nil
}
