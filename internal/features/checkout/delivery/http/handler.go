package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/middleware"
	"storefront-gateway/internal/features/checkout/models"
	"storefront-gateway/internal/features/checkout/service"
	"storefront-gateway/internal/platform/backend"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(service service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkout := router.Group("/checkout")
	{
		checkout.GET("", h.summary)
		checkout.POST("", h.submit)
	}
}

type shippingForm struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type submitResponse struct {
	Next string `json:"next"`
}

// @Summary Checkout item summary
// @Description Load the item the checkout was opened for, identified by type and id query parameters.
// @Tags checkout
// @Produce json
// @Param type query string true "Order type"
// @Param id query string true "Item id"
// @Success 200 {object} service.Summary
// @Router /checkout [get]
func (h *CheckoutHandler) summary(c *gin.Context) {
	orderType := c.Query("type")
	id := c.Query("id")
	if orderType == "" || id == "" {
		middleware.Fail(c, errors.New(errors.ErrCodeBadRequest, "Invalid order parameters"))
		return
	}

	summary, err := h.service.ItemSummary(c.Request.Context(), orderType, id)
	if err != nil {
		middleware.Fail(c, mapServiceError(err, id, "item summary"))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary Submit shipping data
// @Description Serialize the shipping form into the checkout context and return the payment-selection route. No order is created yet.
// @Tags checkout
// @Accept json
// @Produce json
// @Param shipping body shippingForm true "Shipping fields"
// @Success 200 {object} submitResponse
// @Router /checkout [post]
func (h *CheckoutHandler) submit(c *gin.Context) {
	checkout, err := models.ParseContext(c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid order parameters"))
		return
	}

	var form shippingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeValidation, "All shipping fields are required"))
		return
	}

	next, err := h.service.Submit(c.Request.Context(), checkout, backend.Shipping{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Address:   form.Address,
		City:      form.City,
		ZipCode:   form.ZipCode,
		Country:   form.Country,
	})
	if err != nil {
		middleware.Fail(c, mapServiceError(err, checkout.ID, "checkout submit"))
		return
	}

	c.JSON(http.StatusOK, submitResponse{Next: next})
}

// mapServiceError keeps validation failures and missing items out of
// the 502 bucket: only genuine upstream faults are reported as such.
func mapServiceError(err error, itemID, operation string) error {
	if backend.IsNotFound(err) {
		return errors.NewNotFoundError("item", itemID)
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	return errors.NewUpstreamError(operation, err)
}
