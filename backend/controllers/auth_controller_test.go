package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thinkhabit/backend/config"
	"thinkhabit/backend/controllers"
)

// These cover the request validation paths, which reject before any database
// access happens.
func newAuthApp() *fiber.App {
	cfg := &config.Config{JWTSecret: "testsecret"}
	ac := controllers.NewAuthController(nil, cfg, log.New(io.Discard, "", 0))

	app := fiber.New()
	app.Post("/api/auth/register", ac.Register)
	app.Post("/api/auth/login", ac.Login)
	return app
}

func doPost(t *testing.T, app *fiber.App, path string, payload interface{}) int {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	app := newAuthApp()
	status := doPost(t, app, "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	app := newAuthApp()
	status := doPost(t, app, "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	app := newAuthApp()

	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	app := newAuthApp()
	status := doPost(t, app, "/api/auth/login", map[string]string{
		"username": "someone",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
