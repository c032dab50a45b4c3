package middleware

import (
	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	identitymodels "storefront-gateway/internal/features/identity/models"
)

// RequireTelegram gates a route group on a validated Telegram identity.
// Fallback identities are not accepted here.
func RequireTelegram() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentitySource(c) != identitymodels.SourceInitData {
			Fail(c, errors.NewUnauthorizedError("Telegram init data required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route group to the configured admin ids.
func RequireAdmin(adminIDs []int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetTelegramUser(c)
		if !ok || GetIdentitySource(c) != identitymodels.SourceInitData {
			Fail(c, errors.NewUnauthorizedError("Telegram init data required"))
			return
		}

		for _, adminID := range adminIDs {
			if user.ID == adminID {
				c.Next()
				return
			}
		}

		Fail(c, errors.NewForbiddenError("admin access required"))
	}
}
