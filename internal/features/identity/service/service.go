package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/features/identity/models"
	"storefront-gateway/internal/platform/backend"
)

const userCacheTTL = 5 * time.Minute

type IdentityService interface {
	// Resolve registers the raw Telegram identity upstream and merges
	// the backend record over it. Registration failure is not an error:
	// the session degrades to the raw identity.
	Resolve(ctx context.Context, raw models.TelegramUser, source string) *models.User
	UpdateProfile(ctx context.Context, telegramID string, update models.ProfileUpdate) (*models.User, error)
}

type identityService struct {
	client Backend
	cache  Store
}

func NewIdentityService(client Backend, cacheService Store) IdentityService {
	return &identityService{
		client: client,
		cache:  cacheService,
	}
}

func (s *identityService) Resolve(ctx context.Context, raw models.TelegramUser, source string) *models.User {
	telegramID := strconv.FormatInt(raw.ID, 10)

	session := &models.User{
		TelegramID: telegramID,
		FirstName:  raw.FirstName,
		Username:   raw.Username,
		PhotoURL:   raw.PhotoURL,
		Source:     source,
	}

	var record backend.User
	err := s.cache.GetOrSet(ctx, userCacheKey(telegramID), &record, userCacheTTL, func() (interface{}, error) {
		registered, err := s.client.RegisterUser(ctx, telegramID, raw.FirstName, raw.Username)
		if err != nil {
			return nil, err
		}
		return registered, nil
	})
	if err != nil {
		// Single best-effort pass, no retry. The caller keeps the
		// raw/fallback identity and is never shown this failure.
		logger.Warn().Err(err).
			Str("telegram_id", telegramID).
			Str("source", source).
			Msg("User registration failed, continuing unregistered")
		return session
	}

	mergeRecord(session, &record)
	return session
}

func (s *identityService) UpdateProfile(ctx context.Context, telegramID string, update models.ProfileUpdate) (*models.User, error) {
	if _, err := s.client.UpdateProfile(ctx, telegramID, update.Phone, update.Email); err != nil {
		return nil, err
	}

	// The patch response echoes only the changed fields; the cache and
	// the session are rebuilt from the full record.
	record, err := s.client.GetUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userCacheKey(telegramID), record, userCacheTTL); err != nil {
		logger.Warn().Err(err).Str("telegram_id", telegramID).Msg("Failed to refresh user cache")
	}

	session := &models.User{TelegramID: telegramID}
	mergeRecord(session, record)
	return session, nil
}

// mergeRecord lays the backend record over the raw Telegram fields;
// Telegram values survive only where the record is silent.
func mergeRecord(session *models.User, record *backend.User) {
	session.ID = record.ID
	session.Registered = true
	if record.FirstName != "" {
		session.FirstName = record.FirstName
	}
	if record.Username != "" {
		session.Username = record.Username
	}
	if record.PhotoURL != "" {
		session.PhotoURL = record.PhotoURL
	}
	session.Phone = record.Phone
	session.Email = record.Email
}

func userCacheKey(telegramID string) string {
	return fmt.Sprintf("user:%s", telegramID)
}
