package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
	"github.com/raobaba/SkillBridge-Pro-sub006/util"
)

const testSecret = "middleware-test-secret"

func initKeys(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("RSA_PRIVATE_KEY", "")
	require.NoError(t, util.InitAuthKeys())
}

func issueTestToken(t *testing.T, claims *dto.AuthClaims) string {
	t.Helper()
	token, err := util.IssueToken(claims, nil)
	require.NoError(t, err)
	return token
}

func signExpired(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &dto.AuthClaims{
		UserID: "u-1",
		Email:  "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body["error"]
}

func TestAuthenticate(t *testing.T) {
	initKeys(t)

	var handlerHit bool
	var seenUser *dto.AuthUser

	app := fiber.New()
	app.Get("/me", Authenticate, func(c *fiber.Ctx) error {
		handlerHit = true
		seenUser, _ = c.Locals(UserKey).(*dto.AuthUser)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantError  string
	}{
		{
			name:       "no header",
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "No credentials sent.",
		},
		{
			name:       "wrong scheme",
			authHeader: "Token abc.def.ghi",
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "No credentials sent.",
		},
		{
			name:       "bearer with empty token",
			authHeader: "Bearer ",
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "No credentials sent.",
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "Invalid token.",
		},
		{
			name:       "expired token",
			authHeader: "Bearer " + signExpired(t),
			wantStatus: fiber.StatusUnauthorized,
			wantError:  "Token expired.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerHit = false

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, errorBody(t, resp))
			assert.False(t, handlerHit, "rejected request must never reach the handler")
		})
	}

	t.Run("valid token attaches identity", func(t *testing.T) {
		handlerHit = false
		token := issueTestToken(t, &dto.AuthClaims{
			UserID: "u-99",
			Email:  "dev@example.com",
			Roles:  []string{"developer"},
		})

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, handlerHit)
		require.NotNil(t, seenUser)
		assert.Equal(t, "u-99", seenUser.UserID)
		assert.Equal(t, "dev@example.com", seenUser.Email)
		assert.Equal(t, []string{"developer"}, seenUser.Roles)
	})
}

func TestAuthenticate_IncompletePayload(t *testing.T) {
	initKeys(t)

	app := fiber.New()
	app.Get("/x", Authenticate, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Signed correctly but lacking the mandatory email claim
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token payload.", errorBody(t, resp))
}

func TestAuthenticate_BadUserIDType(t *testing.T) {
	initKeys(t)

	app := fiber.New()
	app.Get("/x", Authenticate, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": []string{"not", "a", "scalar"},
		"email":  "a@b.c",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token userId type.", errorBody(t, resp))
}
