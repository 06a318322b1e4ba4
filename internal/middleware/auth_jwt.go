package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mrhabibie/go-socmed-api/dto"
)

type authClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the bearer token on every protected route and stores
// the decoded user id in Locals. Requests without a token stop at 401,
// requests with a bad or expired token at 403.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).
				JSON(dto.ErrorResponse{Message: "Authentication required"})
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims authClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrForbidden
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid || claims.UserID == "" {
			return c.Status(fiber.StatusForbidden).
				JSON(dto.ErrorResponse{Message: "Invalid token"})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}
