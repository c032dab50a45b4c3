package service

import (
	"context"
	"io"

	"storefront-gateway/internal/common/cache"
	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/features/admin/models"
	"storefront-gateway/internal/platform/backend"
)

// BrandingInput carries the editable storefront profile fields.
type BrandingInput struct {
	Name   string
	TgLink string
	Link   string
	Banner *models.Upload
	Logo   *models.Upload
}

// SettingsService manages the payment rails and the storefront profile.
// Writes invalidate the read-side caches so the public endpoints pick
// the change up immediately.
type SettingsService struct {
	client Backend
	cache  *cache.Service
}

func NewSettingsService(client Backend, cacheService *cache.Service) *SettingsService {
	return &SettingsService{client: client, cache: cacheService}
}

func (s *SettingsService) PaymentSettings(ctx context.Context) (*backend.PaymentSettings, error) {
	settings, err := s.client.GetPaymentSettings(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("payment settings", err)
	}
	return settings, nil
}

func (s *SettingsService) UpdatePaymentSettings(ctx context.Context, settings *backend.PaymentSettings) error {
	if err := s.client.UpdatePaymentSettings(ctx, settings); err != nil {
		return apperrors.NewUpstreamError("update payment settings", err)
	}
	if err := s.cache.Delete(ctx, "payments:settings"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate payment settings cache")
	}
	logger.Info().Msg("Payment settings updated")
	return nil
}

func (s *SettingsService) UpdateBranding(ctx context.Context, in BrandingInput) (*backend.Branding, error) {
	form := backend.NewForm()
	if in.Name != "" {
		form.Add("name", in.Name)
	}
	if in.TgLink != "" {
		form.Add("tgLink", in.TgLink)
	}
	if in.Link != "" {
		form.Add("link", in.Link)
	}
	if in.Banner != nil {
		form.AddFile("banner", in.Banner.Name, in.Banner.Content)
	}
	if in.Logo != nil {
		form.AddFile("logo", in.Logo.Name, in.Logo.Content)
	}

	branding, err := s.client.UpdateBranding(ctx, form)
	if err != nil {
		return nil, apperrors.NewUpstreamError("update branding", err)
	}
	if err := s.cache.Delete(ctx, "catalog:branding"); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate branding cache")
	}
	return branding, nil
}

// UploadMedia pushes a standalone file through the upstream uploader and
// returns its public URL.
func (s *SettingsService) UploadMedia(ctx context.Context, name string, content io.Reader) (string, error) {
	url, err := s.client.Upload(ctx, name, content)
	if err != nil {
		return "", apperrors.NewUpstreamError("upload", err)
	}
	return url, nil
}
