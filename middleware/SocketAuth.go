package middleware

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/raobaba/SkillBridge-Pro-sub006/util"
)

// SocketAuth guards the WebSocket handshake with the same trust decision as
// the HTTP gate. The token comes from the "token" query field (the
// handshake auth field) with an Authorization header fallback.
//
// The decision is made exactly once per connection: a rejected handshake
// never upgrades and leaks no partial state, an accepted one keeps its
// identity in the connection locals for the connection lifetime and is not
// re-authenticated per message, even past token expiry.
func SocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		token, _ = bearerToken(c.Get(fiber.HeaderAuthorization))
	}
	if token == "" {
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
