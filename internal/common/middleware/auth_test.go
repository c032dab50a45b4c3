package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	identitymodels "storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/platform/telegram"
)

func adminTestRouter(adminIDs []int64, user identitymodels.TelegramUser, source string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setIdentity(c, user, source, telegram.NullBridge{})
		c.Next()
	})
	router.GET("/admin", RequireTelegram(), RequireAdmin(adminIDs), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	return w.Code
}

func TestRequireAdminAcceptsConfiguredID(t *testing.T) {
	router := adminTestRouter([]int64{42},
		identitymodels.TelegramUser{ID: 42}, identitymodels.SourceInitData)
	assert.Equal(t, http.StatusOK, get(router))
}

func TestRequireAdminRejectsUnknownID(t *testing.T) {
	router := adminTestRouter([]int64{42},
		identitymodels.TelegramUser{ID: 7}, identitymodels.SourceInitData)
	assert.Equal(t, http.StatusForbidden, get(router))
}

func TestRequireTelegramRejectsFallbackIdentity(t *testing.T) {
	router := adminTestRouter([]int64{999999},
		identitymodels.FallbackUser(), identitymodels.SourceFallback)
	assert.Equal(t, http.StatusUnauthorized, get(router))
}

func TestRequireTelegramRejectsWebAppData(t *testing.T) {
	router := adminTestRouter([]int64{42},
		identitymodels.TelegramUser{ID: 42}, identitymodels.SourceWebAppData)
	assert.Equal(t, http.StatusUnauthorized, get(router))
}
