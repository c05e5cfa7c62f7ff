package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"codequest/internal/common"
	"codequest/internal/common/security"
	"codequest/internal/domain/model"
	"codequest/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestSetup(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestSignup(t *testing.T) {
	authTestSetup(t)

	var created *model.User
	svc := NewAuthService(&mockUserRepo{createFn: func(ctx context.Context, user *model.User) error {
		created = user
		return nil
	}})

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.NotEmpty(t, created.HashedPassword, "stored user must keep its hash")
	assert.True(t, security.CheckPasswordHash("hunter2", created.HashedPassword))

	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.HashedPassword, "password hash must not leave the service")
}

func TestSignupMissingFields(t *testing.T) {
	authTestSetup(t)
	svc := NewAuthService(&mockUserRepo{})

	_, err := svc.Signup(context.Background(), SignupRequest{Username: "alice"})
	assert.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestSignupDuplicate(t *testing.T) {
	authTestSetup(t)
	svc := NewAuthService(&mockUserRepo{createFn: func(ctx context.Context, user *model.User) error {
		return common.Errorf("user exists: %w", common.ErrConflict)
	}})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "hunter2",
	})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestLoginByEmailOrUsername(t *testing.T) {
	authTestSetup(t)

	hashed, err := security.HashPassword("hunter2")
	require.NoError(t, err)
	stored := func() *model.User {
		return &model.User{ID: "u-1", Username: "alice", Email: "alice@example.com", HashedPassword: hashed, Role: model.RoleUser}
	}

	svc := NewAuthService(&mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email == "alice@example.com" {
				return stored(), nil
			}
			return nil, common.ErrNotFound
		},
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return stored(), nil
			}
			return nil, common.ErrNotFound
		},
	})

	resp, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	resp, err = svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	authTestSetup(t)

	hashed, err := security.HashPassword("hunter2")
	require.NoError(t, err)

	svc := NewAuthService(&mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "u-1", HashedPassword: hashed}, nil
		},
	})

	_, err = svc.Login(context.Background(), LoginRequest{LoginField: "alice@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	authTestSetup(t)

	svc := NewAuthService(&mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return nil, common.ErrNotFound
		},
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, common.ErrNotFound
		},
	})

	_, err := svc.Login(context.Background(), LoginRequest{LoginField: "ghost", Password: "pw"})
	assert.True(t, errors.Is(err, common.ErrUnauthorized), "unknown user must look like a bad password")
}
