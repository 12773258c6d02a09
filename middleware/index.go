package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"kage_vpn_store/constants"
	"kage_vpn_store/database"
	"kage_vpn_store/helper"
	"kage_vpn_store/model"
	"kage_vpn_store/utils"
)

func tokenFromRequest(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		if helper.Blacklist != nil && helper.Blacklist.Contains(c.Context(), token) {
			return utils.ErrorResponse(c, 401, "Invalid token", errors.New("token revoked"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		c.Locals("rawToken", token)
		return c.Next()
	}
}

// AdminOnly requires Protected to have run first.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, user, isAdmin := helper.GetInfoUserFromToken(c)
		if user == nil {
			return utils.ErrorResponse(c, 401, "Invalid token", errors.New("account not found or disabled"))
		}
		if !isAdmin {
			return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, errors.New("not admin"))
		}
		c.Locals("claim", claim)
		return c.Next()
	}
}

func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// Maintenance closes the storefront while the admin flips the flag; admin and
// auth routes are wired without it so the store can be reopened.
func Maintenance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var setting model.Setting
		if err := database.DB.First(&setting).Error; err != nil {
			return c.Next()
		}
		if setting.MaintenanceMode {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.MAINTENANCE_MODE, nil)
		}
		return c.Next()
	}
}
