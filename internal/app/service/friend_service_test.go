package service

import (
	"context"
	"errors"
	"testing"

	"codequest/internal/common"
	"codequest/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriend(t *testing.T) {
	var createdA, createdB string
	svc := NewFriendService(
		&mockFriendRepo{createFn: func(ctx context.Context, userA, userB string) error {
			createdA, createdB = userA, userB
			return nil
		}},
		&mockUserRepo{findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "u-2", Username: username}, nil
		}},
	)

	friendship, err := svc.AddFriend(context.Background(), "u-1", "bob")
	require.NoError(t, err)

	assert.Equal(t, "u-1", createdA)
	assert.Equal(t, "u-2", createdB)
	assert.Equal(t, "u-1", friendship.UserID1)
	assert.Equal(t, "u-2", friendship.UserID2)
}

func TestAddFriendUnknownUsername(t *testing.T) {
	svc := NewFriendService(
		&mockFriendRepo{},
		&mockUserRepo{findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, common.ErrNotFound
		}},
	)

	_, err := svc.AddFriend(context.Background(), "u-1", "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestAddFriendSelf(t *testing.T) {
	svc := NewFriendService(
		&mockFriendRepo{},
		&mockUserRepo{findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "u-1", Username: username}, nil
		}},
	)

	_, err := svc.AddFriend(context.Background(), "u-1", "me")
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestAddFriendDuplicatePair(t *testing.T) {
	svc := NewFriendService(
		&mockFriendRepo{createFn: func(ctx context.Context, userA, userB string) error {
			return common.Errorf("already friends: %w", common.ErrConflict)
		}},
		&mockUserRepo{findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "u-2", Username: username}, nil
		}},
	)

	_, err := svc.AddFriend(context.Background(), "u-1", "bob")
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestRemoveFriendNotFriends(t *testing.T) {
	svc := NewFriendService(
		&mockFriendRepo{deleteFn: func(ctx context.Context, userA, userB string) (bool, error) {
			return false, nil
		}},
		&mockUserRepo{findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "u-2", Username: username}, nil
		}},
	)

	err := svc.RemoveFriend(context.Background(), "u-1", "bob")
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestListFriendsStripsPasswords(t *testing.T) {
	svc := NewFriendService(
		&mockFriendRepo{listFriendsFn: func(ctx context.Context, userID string) ([]model.User, error) {
			return []model.User{{ID: "u-2", Username: "bob", HashedPassword: "secret"}}, nil
		}},
		&mockUserRepo{findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		}},
	)

	friends, err := svc.ListFriends(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Empty(t, friends[0].HashedPassword)
}
