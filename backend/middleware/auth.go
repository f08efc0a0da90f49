package middleware

import (
	"github.com/gofiber/fiber/v2"

	"thinkhabit/backend/config"
	"thinkhabit/backend/models"
	"thinkhabit/backend/utils"
)

const claimsKey = "tokenClaims"

// AuthMiddleware verifies the session token and stashes the claims in locals.
// Widget-scoped tokens are rejected here; they only open the widget routes.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := utils.ExtractTokenClaims(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if tc.Scope == "widget:read" {
			return utils.Forbidden(c, "Widget tokens cannot access this endpoint")
		}
		c.Locals(claimsKey, tc)
		return c.Next()
	}
}

// AdminMiddleware requires an admin role claim. Must run after AuthMiddleware.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc := TokenClaims(c)
		if tc == nil {
			var err error
			tc, err = utils.ExtractTokenClaims(c, cfg)
			if err != nil {
				return utils.Unauthorized(c, "Unauthorized")
			}
		}
		if tc.Role != models.RoleAdmin {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}
		return c.Next()
	}
}

// WidgetMiddleware admits both regular sessions and widget-scoped read tokens.
func WidgetMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := utils.ExtractTokenClaims(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(claimsKey, tc)
		return c.Next()
	}
}

// TokenClaims returns the claims stored by the auth middlewares, or nil.
func TokenClaims(c *fiber.Ctx) *utils.TokenClaims {
	tc, _ := c.Locals(claimsKey).(*utils.TokenClaims)
	return tc
}
