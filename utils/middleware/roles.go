package middleware

import (
	"github.com/edupanel/campus-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles ensures the authenticated subject carries one of the given
// role tags. Must run after AuthMiddleware.Required.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetSubjectRole(c)
		if !ok || role == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient role")
	}
}

// RequireSelfOrRoles allows the subject itself (matched against the id path
// parameter) or any of the given roles. Used for profile-style endpoints
// where a student may read their own record but admins may read anyone's.
func RequireSelfOrRoles(idParam string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetSubjectRole(c)
		if !ok || role == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		subjectID, ok := GetSubjectID(c)
		if ok {
			if id, err := c.ParamsInt(idParam); err == nil && uint(id) == subjectID {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient role")
	}
}
