package service

import (
	"context"

	apperrors "storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/features/admin/models"
	"storefront-gateway/internal/platform/backend"
)

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name        string
	Price       string
	Description string
	Media       *models.StagedMedia
}

// BundleInput carries the editable bundle fields plus gallery edits.
type BundleInput struct {
	Name        string
	Price       string
	Description string
	Exclusive   bool
	Content     string
	Media       *models.StagedMedia
}

// CatalogAdminService manages the storefront catalog.
type CatalogAdminService struct {
	client Backend
}

func NewCatalogAdminService(client Backend) *CatalogAdminService {
	return &CatalogAdminService{client: client}
}

func (in ProductInput) form() *backend.Form {
	form := backend.NewForm().
		Add("name", in.Name).
		Add("price", in.Price)
	if in.Description != "" {
		form.Add("description", in.Description)
	}
	return in.Media.Apply(form)
}

func (in BundleInput) form() *backend.Form {
	form := backend.NewForm().
		Add("name", in.Name).
		Add("price", in.Price)
	if in.Description != "" {
		form.Add("description", in.Description)
	}
	if in.Exclusive {
		form.Add("exclusive", "true")
	}
	if in.Content != "" {
		form.Add("content", in.Content)
	}
	return in.Media.Apply(form)
}

func (s *CatalogAdminService) CreateProduct(ctx context.Context, in ProductInput) error {
	if err := s.client.CreateProduct(ctx, in.form()); err != nil {
		return apperrors.NewUpstreamError("create product", err)
	}
	logger.Info().Str("name", in.Name).Msg("Product created")
	return nil
}

func (s *CatalogAdminService) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	if err := s.client.UpdateProduct(ctx, id, in.form()); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("product", id)
		}
		return apperrors.NewUpstreamError("update product", err)
	}
	return nil
}

func (s *CatalogAdminService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("product", id)
		}
		return apperrors.NewUpstreamError("delete product", err)
	}
	return nil
}

func (s *CatalogAdminService) CreateBundle(ctx context.Context, in BundleInput) error {
	if err := s.client.CreateBundle(ctx, in.form()); err != nil {
		return apperrors.NewUpstreamError("create bundle", err)
	}
	logger.Info().Str("name", in.Name).Msg("Bundle created")
	return nil
}

func (s *CatalogAdminService) UpdateBundle(ctx context.Context, id string, in BundleInput) error {
	if err := s.client.UpdateBundle(ctx, id, in.form()); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("bundle", id)
		}
		return apperrors.NewUpstreamError("update bundle", err)
	}
	return nil
}

func (s *CatalogAdminService) DeleteBundle(ctx context.Context, id string) error {
	if err := s.client.DeleteBundle(ctx, id); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("bundle", id)
		}
		return apperrors.NewUpstreamError("delete bundle", err)
	}
	return nil
}

func (s *CatalogAdminService) CreateWishlistItem(ctx context.Context, item *backend.WishlistItem) error {
	if err := s.client.CreateWishlistItem(ctx, item); err != nil {
		return apperrors.NewUpstreamError("create wishlist item", err)
	}
	return nil
}

func (s *CatalogAdminService) UpdateWishlistItem(ctx context.Context, id string, item *backend.WishlistItem) error {
	if err := s.client.UpdateWishlistItem(ctx, id, item); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("wishlist item", id)
		}
		return apperrors.NewUpstreamError("update wishlist item", err)
	}
	return nil
}

func (s *CatalogAdminService) DeleteWishlistItem(ctx context.Context, id string) error {
	if err := s.client.DeleteWishlistItem(ctx, id); err != nil {
		if backend.IsNotFound(err) {
			return apperrors.NewNotFoundError("wishlist item", id)
		}
		return apperrors.NewUpstreamError("delete wishlist item", err)
	}
	return nil
}
