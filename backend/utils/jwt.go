package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"thinkhabit/backend/config"
)

// GenerateJWTToken issues a session token. The role rides along in the claims
// so the admin check does not need a database round trip.
func GenerateJWTToken(userID uint, role string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// GenerateWidgetToken issues a short-lived read-only token for the embeddable
// widget and the desktop wrapper. Scope is checked by the widget middleware.
func GenerateWidgetToken(userID uint, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"scope":   "widget:read",
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// TokenClaims is what the middleware hands to controllers.
type TokenClaims struct {
	UserID uint
	Role   string
	Scope  string
}

// ExtractTokenClaims parses the Authorization header (with or without the
// Bearer prefix) and returns the verified claims.
func ExtractTokenClaims(c *fiber.Ctx, cfg *config.Config) (*TokenClaims, error) {
	tokenString := strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer"))
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	tc := &TokenClaims{UserID: uint(userIDFloat)}
	if role, ok := claims["role"].(string); ok {
		tc.Role = role
	}
	if scope, ok := claims["scope"].(string); ok {
		tc.Scope = scope
	}
	return tc, nil
}

// ExtractUserIDFromToken is a shortcut for handlers that only need the subject.
func ExtractUserIDFromToken(c *fiber.Ctx, cfg *config.Config) (uint, error) {
	tc, err := ExtractTokenClaims(c, cfg)
	if err != nil {
		return 0, err
	}
	return tc.UserID, nil
}
