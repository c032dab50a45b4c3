package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/middleware"
	"storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/features/identity/service"
)

type IdentityHandler struct {
	service service.IdentityService
}

func NewIdentityHandler(service service.IdentityService) *IdentityHandler {
	return &IdentityHandler{service: service}
}

func (h *IdentityHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.POST("/profile", h.updateProfile)
	}
}

// @Summary Get current user
// @Description Resolve the session identity from Telegram init data, embedded web-app data or the development fallback, registering it upstream best-effort.
// @Tags users
// @Produce json
// @Success 200 {object} models.User "Session identity"
// @Router /users/me [get]
func (h *IdentityHandler) getMe(c *gin.Context) {
	raw, ok := middleware.GetTelegramUser(c)
	if !ok {
		raw = models.FallbackUser()
	}

	user := h.service.Resolve(c.Request.Context(), raw, middleware.GetIdentitySource(c))
	c.JSON(http.StatusOK, user)
}

// @Summary Update profile
// @Description Update optional contact fields on the current user's backend record.
// @Tags users
// @Accept json
// @Produce json
// @Param profile body models.ProfileUpdate true "Profile fields"
// @Success 200 {object} models.User "Updated identity"
// @Router /users/profile [post]
func (h *IdentityHandler) updateProfile(c *gin.Context) {
	raw, ok := middleware.GetTelegramUser(c)
	if !ok {
		middleware.Fail(c, errors.NewUnauthorizedError("no resolved identity"))
		return
	}

	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid profile payload"))
		return
	}

	user := h.service.Resolve(c.Request.Context(), raw, middleware.GetIdentitySource(c))
	updated, err := h.service.UpdateProfile(c.Request.Context(), user.TelegramID, input)
	if err != nil {
		middleware.Fail(c, errors.NewUpstreamError("update profile", err))
		return
	}

	c.JSON(http.StatusOK, updated)
}
