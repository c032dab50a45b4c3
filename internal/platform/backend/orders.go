package backend

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateStarsOrder creates the order and its Telegram Stars invoice in a
// single upstream call. The order must exist before the invoice is opened
// because confirmation is keyed by order id.
func (c *Client) CreateStarsOrder(ctx context.Context, req *CreateStarsOrderRequest) (*StarsOrder, error) {
	var resp StarsOrder
	if err := c.doJSON(ctx, http.MethodPost, "/orders/stars", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetOrderDetail(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/detail/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetAdminOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPatch, "/orders/"+id+"/status", body, nil)
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	body := map[string]string{"paymentStatus": paymentStatus}
	return c.doJSON(ctx, http.MethodPatch, "/orders/"+id+"/payment-status", body, nil)
}

// AttachScreenshot uploads a payment screenshot onto the order.
func (c *Client) AttachScreenshot(ctx context.Context, id, filename string, content io.Reader) error {
	form := NewForm().AddFile("screenshot", filename, content)
	return c.doMultipart(ctx, http.MethodPatch, "/orders/"+id, form, nil)
}

// AttachRatingPhoto uploads the secondary photo for rating orders. The
// upstream keys it by "{id}-rating" rather than a sub-path.
func (c *Client) AttachRatingPhoto(ctx context.Context, id, filename string, content io.Reader) error {
	form := NewForm().AddFile("photo", filename, content)
	return c.doMultipart(ctx, http.MethodPatch, "/orders/"+id+"-rating", form, nil)
}

func (c *Client) GetPaymentSettings(ctx context.Context) (*PaymentSettings, error) {
	var settings PaymentSettings
	if err := c.doJSON(ctx, http.MethodGet, "/orders/payments", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdatePaymentSettings(ctx context.Context, settings *PaymentSettings) error {
	return c.doJSON(ctx, http.MethodPatch, "/admin/change-payments", settings, nil)
}
