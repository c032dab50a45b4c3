package backend

import (
	"context"
	"net/http"
)

// RegisterUser creates or refreshes the backend user record for a
// Telegram identity.
func (c *Client) RegisterUser(ctx context.Context, telegramID, firstName, username string) (*User, error) {
	body := map[string]string{
		"telegramId": telegramID,
		"firstName":  firstName,
		"username":   username,
	}
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUser(ctx context.Context, telegramID string) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/user/"+telegramID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches optional contact fields on the user record.
func (c *Client) UpdateProfile(ctx context.Context, telegramID string, phone, email string) (*User, error) {
	body := map[string]string{"telegramId": telegramID}
	if phone != "" {
		body["phone"] = phone
	}
	if email != "" {
		body["email"] = email
	}
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/profile", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
