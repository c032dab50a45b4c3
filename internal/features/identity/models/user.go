package models

// Resolution sources, in attempt order.
const (
	SourceInitData   = "init_data"
	SourceWebAppData = "web_app_data"
	SourceFallback   = "fallback"
)

// TelegramUser is the raw identity extracted from the WebApp bridge or
// one of its fallbacks, before the backend record is merged over it.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// FallbackUser is the hardcoded development identity used when neither
// init data nor embedded web-app data is present.
func FallbackUser() TelegramUser {
	return TelegramUser{ID: 999999, FirstName: "Dev", Username: "dev_user"}
}

// User is the session identity: the backend record merged over the raw
// Telegram fields.
type User struct {
	ID         string `json:"id,omitempty"`
	TelegramID string `json:"telegramId"`
	FirstName  string `json:"firstName"`
	Username   string `json:"username,omitempty"`
	PhotoURL   string `json:"photoUrl,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	// Registered reports whether the backend record was obtained; a
	// false value means the session runs on the raw/fallback identity.
	Registered bool   `json:"registered"`
	Source     string `json:"source"`
}

type ProfileUpdate struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}
