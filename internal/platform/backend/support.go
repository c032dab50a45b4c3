package backend

import (
	"context"
	"net/http"
)

func (c *Client) GetSupportChats(ctx context.Context) ([]SupportChat, error) {
	var chats []SupportChat
	if err := c.doJSON(ctx, http.MethodGet, "/support/chats", nil, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (c *Client) GetSupportMessages(ctx context.Context, userID string) ([]SupportMessage, error) {
	var messages []SupportMessage
	if err := c.doJSON(ctx, http.MethodGet, "/support/messages/"+userID, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendSupportMessage(ctx context.Context, msg *SendSupportMessage) error {
	return c.doJSON(ctx, http.MethodPost, "/support/send", msg, nil)
}
