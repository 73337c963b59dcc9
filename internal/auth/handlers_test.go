package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest() *fiber.App {
	h := &Handlers{Service: &Service{
		Username: "admin",
		Password: "atlas2026",
		Token:    "fake-jwt-token-for-demo",
	}}
	app := fiber.New()
	app.Post("/api/login", h.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, username, password string) (int, map[string]string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestLogin_CorrectPair(t *testing.T) {
	app := setupAuthTest()
	status, out := postLogin(t, app, "admin", "atlas2026")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Login successful", out["message"])
	assert.Equal(t, "fake-jwt-token-for-demo", out["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app := setupAuthTest()
	status, out := postLogin(t, app, "admin", "wrong")
	assert.Equal(t, 401, status)
	assert.Equal(t, "Invalid credentials", out["error"])
	assert.Empty(t, out["token"])
}

func TestLogin_WrongUsername(t *testing.T) {
	app := setupAuthTest()
	status, _ := postLogin(t, app, "root", "atlas2026")
	assert.Equal(t, 401, status)
}

func TestLogin_MissingFields(t *testing.T) {
	app := setupAuthTest()
	status, _ := postLogin(t, app, "", "")
	assert.Equal(t, 400, status)
}
