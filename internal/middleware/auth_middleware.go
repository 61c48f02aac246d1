package middleware

import (
	"strings"

	"go-inventory-sheets/internal/model"
	"go-inventory-sheets/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by RequireAuth.
const (
	LocalUser      = "user"
	LocalSessionID = "session_id"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// SessionResolver maps a session id to its current user. Deleted users have no session.
type SessionResolver interface {
	CurrentUser(sessionID string) (*model.User, error)
}

// RequireAuth is middleware that validates the JWT, resolves the session's
// current user and stores both in the request context
func RequireAuth(tokens TokenValidator, sessions SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The session must still exist and its user must not have been deleted
		user, err := sessions.CurrentUser(claims.SessionID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired, please log in again"})
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalSessionID, claims.SessionID)
		return c.Next()
	}
}

// RequirePermission checks the authenticated user's permission flags.
func RequirePermission(perm model.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !user.Permissions.Has(perm) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + string(perm) + "' permission",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user set by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}

func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
