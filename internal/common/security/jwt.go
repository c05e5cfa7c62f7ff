package security

import (
	"fmt"
	"time"

	"codequest/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer identifies tokens minted by this service.
const Issuer = "codequest"

const (
	claimUserID = "user_id"
	claimRole   = "role"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		claimUserID: userID,
		claimRole:   role,
		"iss":       Issuer,
		"exp":       now.Add(config.AppConfig.JWTExp).Unix(),
		"iat":       now.Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, claimUserID)
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	return stringClaim(claims, claimRole)
}

func stringClaim(claims jwt.MapClaims, key string) (string, error) {
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or not a string", key)
	}
	return value, nil
}
