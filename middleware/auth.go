package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/models"
	"learnhub/utils"
)

// AuthMiddleware validates the bearer token and stores the caller's id in
// the request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// EducatorMiddleware requires an approved educator. The role lives in the
// database, not the token, so a freshly approved educator does not need to
// re-login.
func EducatorMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return requireRole(db, cfg, func(u *models.User) bool { return u.IsEducator() })
}

func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return requireRole(db, cfg, func(u *models.User) bool { return u.Role == models.RoleAdmin })
}

func requireRole(db *gorm.DB, cfg *config.Config, allowed func(*models.User) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		if !allowed(&user) {
			return utils.Forbidden(c, "Forbidden - insufficient role")
		}

		c.Locals("userID", userID)
		c.Locals("role", user.Role)
		return c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by the auth middleware.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
