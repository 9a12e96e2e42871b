package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
)

// wsRequest builds a request that looks like a WebSocket handshake so the
// gate's decision logic runs; the test stands in for the upgrade handler.
func wsRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestSocketAuth(t *testing.T) {
	initKeys(t)

	var upgraded bool
	var seenUser *dto.AuthUser

	app := fiber.New()
	app.Get("/ws/chat", SocketAuth, func(c *fiber.Ctx) error {
		upgraded = true
		seenUser, _ = c.Locals(UserKey).(*dto.AuthUser)
		return c.SendStatus(fiber.StatusSwitchingProtocols)
	})

	t.Run("plain http request is refused", func(t *testing.T) {
		upgraded = false
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/chat", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
		assert.False(t, upgraded)
	})

	t.Run("handshake without token", func(t *testing.T) {
		upgraded = false
		resp, err := app.Test(wsRequest("/ws/chat"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "No credentials sent.", errorBody(t, resp))
		assert.False(t, upgraded, "refused handshake must not reach the upgrade handler")
	})

	t.Run("handshake with expired token", func(t *testing.T) {
		upgraded = false
		resp, err := app.Test(wsRequest("/ws/chat?token=" + signExpired(t)))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Token expired.", errorBody(t, resp))
		assert.False(t, upgraded)
	})

	t.Run("token in query field", func(t *testing.T) {
		upgraded = false
		token := issueTestToken(t, &dto.AuthClaims{
			UserID: "u-5", Email: "chat@example.com", Roles: []string{"developer"},
		})

		resp, err := app.Test(wsRequest("/ws/chat?token=" + token))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusSwitchingProtocols, resp.StatusCode)
		assert.True(t, upgraded)
		require.NotNil(t, seenUser)
		assert.Equal(t, "u-5", seenUser.UserID)
	})

	t.Run("authorization header fallback", func(t *testing.T) {
		upgraded = false
		token := issueTestToken(t, &dto.AuthClaims{
			UserID: "u-6", Email: "chat@example.com", Roles: []string{"developer"},
		})

		req := wsRequest("/ws/chat")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusSwitchingProtocols, resp.StatusCode)
		assert.True(t, upgraded)
		require.NotNil(t, seenUser)
		assert.Equal(t, "u-6", seenUser.UserID)
	})
}
