package auth

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"eventhub_backend/internals/configs"
	authHelper "eventhub_backend/internals/helpers/auth"
)

// AuthMiddleware verifies the access token and stores {id, role} in locals.
// The token travels on the x-auth-token header; Authorization: Bearer is
// accepted as a fallback.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
		}

		secret := configs.JWTSecret
		if secret == "" {
			secret = configs.DefaultJWTSecret
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			log.Printf("[ERROR] Token parse failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
		}

		if err := validateExpiry(claims); err != nil {
			return err
		}

		id, _ := claims["id"].(string)
		role, _ := claims["role"].(string)
		if id == "" || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
		}

		c.Locals(authHelper.LocalsUserID, id)
		c.Locals(authHelper.LocalsUserRole, role)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if t := strings.TrimSpace(c.Get("x-auth-token")); t != "" {
		return t
	}
	if h := strings.TrimSpace(c.Get("Authorization")); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func validateExpiry(claims jwt.MapClaims) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Token is not valid")
	}
	if time.Now().After(time.Unix(int64(exp), 0)) {
		return fiber.NewError(fiber.StatusUnauthorized, "Token expired")
	}
	return nil
}
