package middleware

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"storefront-gateway/internal/common/logger"
	identitymodels "storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/platform/telegram"
)

const (
	ctxKeyTelegramUser = "telegram_user"
	ctxKeyBridge       = "telegram_bridge"
	ctxKeySource       = "identity_source"
)

// Identity resolves the caller's Telegram identity in a single
// best-effort pass: validated init_data header, then an embedded
// tgWebAppData parameter, then the hardcoded development fallback.
// It never rejects the request; degradation is silent.
//
// The bridge capability follows the same decision: only a validated
// init_data header proves the caller runs inside a Telegram host.
func Identity(botToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("init_data"); raw != "" {
			if err := initdata.Validate(raw, botToken, time.Duration(0)); err == nil {
				if parsed, err := initdata.Parse(raw); err == nil && parsed.User.ID != 0 {
					setIdentity(c, fromInitDataUser(parsed.User), identitymodels.SourceInitData, telegram.NewWebAppBridge())
					c.Next()
					return
				}
			} else {
				logger.Debug().Err(err).Msg("init_data validation failed, trying fallbacks")
			}
		}

		if raw := c.Query("tgWebAppData"); raw != "" {
			if user, ok := parseWebAppData(raw); ok {
				setIdentity(c, user, identitymodels.SourceWebAppData, telegram.NullBridge{})
				c.Next()
				return
			}
		}

		setIdentity(c, identitymodels.FallbackUser(), identitymodels.SourceFallback, telegram.NullBridge{})
		c.Next()
	}
}

func setIdentity(c *gin.Context, user identitymodels.TelegramUser, source string, bridge telegram.Bridge) {
	c.Set(ctxKeyTelegramUser, user)
	c.Set(ctxKeySource, source)
	c.Set(ctxKeyBridge, bridge)
}

func fromInitDataUser(u initdata.User) identitymodels.TelegramUser {
	return identitymodels.TelegramUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		PhotoURL:  u.PhotoURL,
	}
}

// parseWebAppData unpacks a tgWebAppData value carried over from the
// URL fragment. The value arrives double-encoded; after unescaping it is
// a query string whose "user" member is a JSON object.
func parseWebAppData(raw string) (identitymodels.TelegramUser, bool) {
	decoded := raw
	for i := 0; i < 2; i++ {
		next, err := url.QueryUnescape(decoded)
		if err != nil {
			break
		}
		decoded = next
	}

	values, err := url.ParseQuery(decoded)
	if err != nil {
		return identitymodels.TelegramUser{}, false
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return identitymodels.TelegramUser{}, false
	}

	var user identitymodels.TelegramUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == 0 {
		return identitymodels.TelegramUser{}, false
	}
	return user, true
}

// GetTelegramUser returns the identity resolved by Identity.
func GetTelegramUser(c *gin.Context) (identitymodels.TelegramUser, bool) {
	v, exists := c.Get(ctxKeyTelegramUser)
	if !exists {
		return identitymodels.TelegramUser{}, false
	}
	user, ok := v.(identitymodels.TelegramUser)
	return user, ok
}

// GetIdentitySource returns which resolution step produced the identity.
func GetIdentitySource(c *gin.Context) string {
	if v, exists := c.Get(ctxKeySource); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return identitymodels.SourceFallback
}

// GetBridge returns the per-request WebApp bridge capability.
func GetBridge(c *gin.Context) telegram.Bridge {
	if v, exists := c.Get(ctxKeyBridge); exists {
		if b, ok := v.(telegram.Bridge); ok {
			return b
		}
	}
	return telegram.NullBridge{}
}
