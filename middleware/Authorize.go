package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
)

// Authorize returns the role gate for a protected operation's allow-list.
// It must run after Authenticate or SocketAuth: a request that was never
// authenticated fails with 401 "Authentication required.", which is
// distinct from an authenticated caller lacking privilege (403).
func Authorize(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := c.Locals(UserKey)
		if v == nil {
			return reject(c, fiber.StatusUnauthorized, "Authentication required.")
		}
		user, ok := v.(*dto.AuthUser)
		if !ok {
			// Something other than a trust gate put a value under UserKey
			return reject(c, fiber.StatusInternalServerError, "Authorization check failed.")
		}

		effective := effectiveRoles(user)
		if len(effective) == 0 {
			return reject(c, fiber.StatusForbidden, "roles not found")
		}

		for _, r := range effective {
			for _, allowed := range allowedRoles {
				if r == allowed {
					return c.Next()
				}
			}
		}

		// Role names are not secret, naming both sides aids debugging
		return reject(c, fiber.StatusForbidden, fmt.Sprintf(
			"requires one of roles [%s], user has roles [%s]",
			strings.Join(allowedRoles, ", "), strings.Join(effective, ", ")))
	}
}

// effectiveRoles folds the legacy singular role field into the plural set.
// Older services minted tokens with only "role"; the union keeps those
// identities valid without letting the legacy field leak past this gate.
func effectiveRoles(u *dto.AuthUser) []string {
	seen := make(map[string]bool, len(u.Roles)+1)
	var roles []string
	if u.Role != "" {
		seen[u.Role] = true
		roles = append(roles, u.Role)
	}
	for _, r := range u.Roles {
		if r != "" && !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	return roles
}

// Presets for the platform's common allow-lists.
var (
	AdminOnly    = Authorize("admin")
	OwnerOrAdmin = Authorize("owner", "admin")
)

// RequireRole guards an operation open to a single role.
func RequireRole(role string) fiber.Handler {
	return Authorize(role)
}
