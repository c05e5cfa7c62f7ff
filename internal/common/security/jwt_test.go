package security

import (
	"testing"
	"time"

	"codequest/internal/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtTestSetup(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{JWTKey: []byte("test-secret"), JWTExp: time.Hour}
	t.Cleanup(func() { config.AppConfig = prev })
	InitJWT()
}

func TestGenerateTokenClaims(t *testing.T) {
	jwtTestSetup(t)

	tokenString, err := GenerateToken("u-1", "admin")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return config.AppConfig.JWTKey, nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)

	role, err := GetUserRoleFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	assert.Equal(t, Issuer, claims["iss"])
}

func TestClaimGettersRejectBadClaims(t *testing.T) {
	_, err := GetUserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)

	_, err = GetUserRoleFromClaims(jwt.MapClaims{"role": 42})
	assert.Error(t, err)
}
