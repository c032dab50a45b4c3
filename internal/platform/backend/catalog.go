package backend

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetBundles(ctx context.Context) ([]Bundle, error) {
	var bundles []Bundle
	if err := c.doJSON(ctx, http.MethodGet, "/bundles", nil, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

func (c *Client) GetBundle(ctx context.Context, id string) (*Bundle, error) {
	var bundle Bundle
	if err := c.doJSON(ctx, http.MethodGet, "/bundles/"+id, nil, &bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (c *Client) GetWishlist(ctx context.Context) ([]WishlistItem, error) {
	var items []WishlistItem
	if err := c.doJSON(ctx, http.MethodGet, "/wishlist", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetWishlistItem(ctx context.Context, id string) (*WishlistItem, error) {
	var envelope wishlistItemEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/wishlist/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Wishlist, nil
}

func (c *Client) GetBranding(ctx context.Context) (*Branding, error) {
	var envelope brandingEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/girl", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Girl, nil
}

// UpdateBranding submits the multipart branding form (name, tgLink, link,
// banner and logo files).
func (c *Client) UpdateBranding(ctx context.Context, form *Form) (*Branding, error) {
	var envelope brandingEnvelope
	if err := c.doMultipart(ctx, http.MethodPatch, "/girl", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Girl, nil
}

// Admin catalog mutations. Multipart is required once file uploads are
// involved; plain JSON otherwise.

func (c *Client) CreateProduct(ctx context.Context, form *Form) error {
	return c.doMultipart(ctx, http.MethodPost, "/admin/products", form, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, form *Form) error {
	return c.doMultipart(ctx, http.MethodPut, "/admin/products/"+id, form, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil)
}

func (c *Client) CreateBundle(ctx context.Context, form *Form) error {
	return c.doMultipart(ctx, http.MethodPost, "/admin/bundles", form, nil)
}

func (c *Client) UpdateBundle(ctx context.Context, id string, form *Form) error {
	return c.doMultipart(ctx, http.MethodPut, "/admin/bundles/"+id, form, nil)
}

func (c *Client) DeleteBundle(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/bundles/"+id, nil, nil)
}

func (c *Client) CreateWishlistItem(ctx context.Context, item *WishlistItem) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/wishlist", item, nil)
}

func (c *Client) UpdateWishlistItem(ctx context.Context, id string, item *WishlistItem) error {
	return c.doJSON(ctx, http.MethodPut, "/admin/wishlist/"+id, item, nil)
}

func (c *Client) DeleteWishlistItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/wishlist/"+id, nil, nil)
}

// Upload pushes a media file to the generic upload endpoint and returns
// its public URL.
func (c *Client) Upload(ctx context.Context, name string, content io.Reader) (string, error) {
	form := NewForm().AddFile("file", name, content)
	var resp uploadResponse
	if err := c.doMultipart(ctx, http.MethodPost, "/upload", form, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
