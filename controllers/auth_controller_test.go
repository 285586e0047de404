package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.doJSON(t, "POST", "/api/auth/register", "", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "student", body["user"].(map[string]interface{})["role"])
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.doJSON(t, "POST", "/api/auth/register", "", fiber.Map{
		"email": "no-name@example.com",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada", "dup@example.com")

	resp, _ := env.doJSON(t, "POST", "/api/auth/register", "", fiber.Map{
		"name":     "Ada Again",
		"email":    "dup@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada", "login@example.com")

	resp, body := env.doJSON(t, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada", "wrongpw@example.com")

	resp, _ := env.doJSON(t, "POST", "/api/auth/login", "", fiber.Map{
		"email":    "wrongpw@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBearerPrefixAccepted(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "Ada", "bearer@example.com")

	resp, _ := env.doJSON(t, "GET", "/api/user/profile", "Bearer "+token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.doJSON(t, "GET", "/api/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
