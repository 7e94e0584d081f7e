package middleware

import (
	"strings"

	"nova-library/internal/pkg/jwt"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StaffCookie holds the signed staff token set by the PIN unlock
const StaffCookie = "access_token"

// Locals keys set for authenticated staff
const (
	LocalRole    = "role"
	LocalIsStaff = "isStaff"
)

func tokenFrom(c *fiber.Ctx) string {
	// 1. Try cookie first
	if token := c.Cookies(StaffCookie); token != "" {
		return token
	}
	// 2. Fall back to Authorization header
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// StaffAuth requires a valid staff token and answers with JSON otherwise
func StaffAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalIsStaff, true)
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN")
}

// OptionalStaff marks the request as staff when a valid token is present
func OptionalStaff(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := tokenFrom(c); accessToken != "" {
			if claims, err := jwt.ValidateAccessToken(accessToken, secret); err == nil {
				c.Locals(LocalRole, claims.Role)
				c.Locals(LocalIsStaff, claims.Role == "ADMIN")
			}
		}
		return c.Next()
	}
}

// StaffPages guards the HTML admin forms; locked visitors go back to the admin tab
func StaffPages(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := tokenFrom(c)
		if accessToken == "" {
			return c.Redirect("/?tab=admin", fiber.StatusSeeOther)
		}
		claims, err := jwt.ValidateAccessToken(accessToken, secret)
		if err != nil || claims.Role != "ADMIN" {
			return c.Redirect("/?tab=admin", fiber.StatusSeeOther)
		}
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalIsStaff, true)
		return c.Next()
	}
}

// IsStaff reports whether OptionalStaff or StaffAuth accepted the request
func IsStaff(c *fiber.Ctx) bool {
	ok, _ := c.Locals(LocalIsStaff).(bool)
	return ok
}
