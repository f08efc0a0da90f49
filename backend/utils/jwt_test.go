package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thinkhabit/backend/config"
)

func claimsVia(t *testing.T, cfg *config.Config, header string) (*TokenClaims, error) {
	t.Helper()

	var got *TokenClaims
	var gotErr error
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got, gotErr = ExtractTokenClaims(c, cfg)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	_, err := app.Test(req)
	require.NoError(t, err)
	return got, gotErr
}

func TestJWTRoundtrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken(42, "admin", cfg)
	require.NoError(t, err)

	tc, err := claimsVia(t, cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), tc.UserID)
	assert.Equal(t, "admin", tc.Role)
	assert.Empty(t, tc.Scope)
}

func TestJWTAcceptsBearerPrefix(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateJWTToken(7, "user", cfg)
	require.NoError(t, err)

	tc, err := claimsVia(t, cfg, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), tc.UserID)
}

func TestWidgetTokenCarriesScope(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := GenerateWidgetToken(7, cfg)
	require.NoError(t, err)

	tc, err := claimsVia(t, cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), tc.UserID)
	assert.Equal(t, "widget:read", tc.Scope)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWTToken(42, "user", &config.Config{JWTSecret: "one"})
	require.NoError(t, err)

	_, err = claimsVia(t, &config.Config{JWTSecret: "two"}, token)
	assert.Error(t, err)
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	_, err := claimsVia(t, &config.Config{JWTSecret: "testsecret"}, "")
	assert.Error(t, err)
}
