package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitymodels "storefront-gateway/internal/features/identity/models"
)

func TestParseWebAppDataDoubleEncoded(t *testing.T) {
	inner := url.Values{}
	inner.Set("user", `{"id":7,"first_name":"Ann","username":"ann"}`)
	inner.Set("auth_date", "1700000000")

	// The fragment value reaches the server URL-encoded once more.
	raw := url.QueryEscape(inner.Encode())

	user, ok := parseWebAppData(raw)
	require.True(t, ok)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Ann", user.FirstName)
	assert.Equal(t, "ann", user.Username)
}

func TestParseWebAppDataRejectsGarbage(t *testing.T) {
	_, ok := parseWebAppData("not-a-query%%%")
	assert.False(t, ok)

	_, ok = parseWebAppData("foo=bar")
	assert.False(t, ok)

	_, ok = parseWebAppData("user=%7B%22id%22%3A0%7D")
	assert.False(t, ok)
}

func identityTestRouter(botToken string) (*gin.Engine, *struct {
	user   identitymodels.TelegramUser
	source string
	bridge bool
}) {
	gin.SetMode(gin.TestMode)
	captured := &struct {
		user   identitymodels.TelegramUser
		source string
		bridge bool
	}{}

	router := gin.New()
	router.Use(Identity(botToken))
	router.GET("/probe", func(c *gin.Context) {
		captured.user, _ = GetTelegramUser(c)
		captured.source = GetIdentitySource(c)
		captured.bridge = GetBridge(c).Available()
		c.Status(http.StatusOK)
	})
	return router, captured
}

func TestIdentityFallsBackToDevUser(t *testing.T) {
	router, captured := identityTestRouter("test-token")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identitymodels.SourceFallback, captured.source)
	assert.Equal(t, int64(999999), captured.user.ID)
	assert.False(t, captured.bridge, "fallback identity must not carry a bridge")
}

func TestIdentityUsesWebAppDataParam(t *testing.T) {
	router, captured := identityTestRouter("test-token")

	inner := url.Values{}
	inner.Set("user", `{"id":7,"first_name":"Ann"}`)
	target := "/probe?tgWebAppData=" + url.QueryEscape(url.QueryEscape(inner.Encode()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, identitymodels.SourceWebAppData, captured.source)
	assert.Equal(t, int64(7), captured.user.ID)
	assert.False(t, captured.bridge, "webapp-data identity must not carry a bridge")
}

func TestIdentityInvalidInitDataDegrades(t *testing.T) {
	router, captured := identityTestRouter("test-token")

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("init_data", "query_id=x&user=%7B%22id%22%3A7%7D&hash=deadbeef")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identitymodels.SourceFallback, captured.source)
}
