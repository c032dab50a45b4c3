package service

import (
	"context"
	"io"
	"time"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/platform/backend"
)

const (
	chatsCacheKey  = "support:chats"
	threadCacheKey = "support:thread:"
	snapshotTTL    = time.Minute
	chatsInterval  = 10 * time.Second
	threadInterval = 5 * time.Second
)

// Outgoing is an admin reply: text plus an optional media upload that
// goes through the generic uploader first.
type Outgoing struct {
	Message   string
	MediaName string
	MediaType string
	Media     io.Reader
	OrderID   string
}

// InboxService reads the support inbox. Listings prefer the poller's
// redis snapshot and fall back to a live upstream fetch on a miss.
type InboxService struct {
	client Backend
	cache  Snapshots
}

func NewInboxService(client Backend, cacheService Snapshots) *InboxService {
	return &InboxService{client: client, cache: cacheService}
}

func (s *InboxService) Chats(ctx context.Context) ([]backend.SupportChat, error) {
	var chats []backend.SupportChat
	if err := s.cache.Get(ctx, chatsCacheKey, &chats); err == nil {
		return chats, nil
	}

	chats, err := s.client.GetSupportChats(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("support chats", err)
	}
	return chats, nil
}

func (s *InboxService) Messages(ctx context.Context, userID string) ([]backend.SupportMessage, error) {
	if userID == "" {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "User id is required")
	}

	var messages []backend.SupportMessage
	if err := s.cache.Get(ctx, threadCacheKey+userID, &messages); err == nil {
		return messages, nil
	}

	messages, err := s.client.GetSupportMessages(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUpstreamError("support messages", err)
	}
	return messages, nil
}

// Send posts an admin reply, uploading the attachment first when one is
// present.
func (s *InboxService) Send(ctx context.Context, userID string, out Outgoing) error {
	if userID == "" {
		return apperrors.New(apperrors.ErrCodeBadRequest, "User id is required")
	}
	if out.Message == "" && out.Media == nil {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Message text or media is required")
	}

	msg := &backend.SendSupportMessage{
		UserID:  userID,
		Message: out.Message,
		OrderID: out.OrderID,
	}

	if out.Media != nil {
		url, err := s.client.Upload(ctx, out.MediaName, out.Media)
		if err != nil {
			return apperrors.NewUpstreamError("upload support media", err)
		}
		msg.MediaURL = url
		msg.MediaType = out.MediaType
	}

	if err := s.client.SendSupportMessage(ctx, msg); err != nil {
		return apperrors.NewUpstreamError("send support message", err)
	}

	// The snapshot is stale the moment we reply; drop it so the next
	// read refetches.
	if err := s.cache.Delete(ctx, threadCacheKey+userID); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate thread snapshot")
	}
	return nil
}
