package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/raobaba/SkillBridge-Pro-sub006/util"
)

// UserKey is the locals key the trust gates attach the identity under.
const UserKey = "user"

// Authenticate is the HTTP trust gate. It requires an exact
// "Bearer <token>" Authorization header, runs the shared trust decision and
// attaches the resulting identity to the request scope. Every rejection
// short-circuits: handler code never runs on a failed decision.
func Authenticate(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return reject(c, fiber.StatusUnauthorized, "No credentials sent.")
	}

	user, err := util.ResolveIdentity(token)
	if err != nil {
		status, msg := authFailure(err)
		return reject(c, status, msg)
	}

	c.Locals(UserKey, user)
	return c.Next()
}

// bearerToken extracts the credential from an Authorization header value,
// requiring the exact "Bearer <token>" shape.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// authFailure maps a trust decision error to a status code and a
// caller-facing message. Messages name the cause but never echo claims or
// key material. A missing signing key is a server fault, not a caller fault.
func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, util.ErrNoSigningKey):
		return fiber.StatusInternalServerError, "Authentication is not configured."
	case errors.Is(err, util.ErrTokenExpired):
		return fiber.StatusUnauthorized, "Token expired."
	case errors.Is(err, util.ErrTokenNotYetValid):
		return fiber.StatusUnauthorized, "Token not yet valid."
	case errors.Is(err, util.ErrTokenMalformed):
		return fiber.StatusUnauthorized, "Invalid token."
	case errors.Is(err, util.ErrClaimsIncomplete):
		return fiber.StatusUnauthorized, "Invalid token payload."
	case errors.Is(err, util.ErrBadUserIDType):
		return fiber.StatusUnauthorized, "Invalid token userId type."
	default:
		return fiber.StatusUnauthorized, "Authentication failed."
	}
}

func reject(c *fiber.Ctx, status int, msg string) error {
	log.Printf("[AUTH] %s %s -> %d: %s", c.Method(), c.Path(), status, msg)
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
