package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": "64f000000000000000000001",
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequireAuth(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newApp()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", fiber.StatusForbidden},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", time.Hour), fiber.StatusForbidden},
		{"expired", "Bearer " + signToken(t, testSecret, -time.Hour), fiber.StatusForbidden},
		{"valid", "Bearer " + signToken(t, testSecret, time.Hour), fiber.StatusOK},
	}

	for _, c := range cases {
		req := httptest.NewRequest("GET", "/protected", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if resp.StatusCode != c.status {
			t.Fatalf("%s: status %d, want %d", c.name, resp.StatusCode, c.status)
		}
	}
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Hour))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "64f000000000000000000001" {
		t.Fatalf("locals user_id = %q", body)
	}
}
