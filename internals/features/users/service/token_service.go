package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"eventhub_backend/internals/configs"
)

const tokenTTL = 7 * 24 * time.Hour

// IssueToken signs the {id, role} access token with a 7-day validity.
func IssueToken(userID uuid.UUID, role string) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		secret = configs.DefaultJWTSecret
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":   userID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
