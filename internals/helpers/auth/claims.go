package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocalsUserID   = "user_id"
	LocalsUserRole = "user_role"
)

// GetUserIDFromToken reads the authenticated user id from c.Locals.
// 401 when not logged in, 400 when the token carried a malformed id.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocalsUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user ID in token")
	}
}

// GetUserRoleFromToken reads the role claim stored by the auth middleware.
func GetUserRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals(LocalsUserRole).(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing role information")
	}
	return role, nil
}
