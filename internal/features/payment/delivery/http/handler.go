package http

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/middleware"
	checkoutmodels "storefront-gateway/internal/features/checkout/models"
	identityservice "storefront-gateway/internal/features/identity/service"
	"storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/features/payment/service"
)

type PaymentHandler struct {
	identity     identityservice.IdentityService
	dispatcher   *service.Dispatcher
	confirmation *service.ConfirmationService
	stars        *service.StarsService
}

func NewPaymentHandler(identity identityservice.IdentityService, dispatcher *service.Dispatcher, confirmation *service.ConfirmationService, stars *service.StarsService) *PaymentHandler {
	return &PaymentHandler{
		identity:     identity,
		dispatcher:   dispatcher,
		confirmation: confirmation,
		stars:        stars,
	}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payment := router.Group("/payment")
	{
		payment.GET("/methods", h.methods)
		payment.POST("/select", h.selectMethod)
		payment.GET("/instructions", h.instructions)
		payment.POST("/orders/:orderId/confirm", h.confirm)
		payment.POST("/stars", h.payStars)
		payment.GET("/stars/:orderId/confirm", h.confirmStars)
	}
}

type methodOption struct {
	Method models.PaymentMethod `json:"method"`
	Label  string               `json:"label"`
}

type methodsResponse struct {
	Methods []methodOption `json:"methods"`
	Stars   int            `json:"stars"`
}

// @Summary Available payment methods
// @Description List the payment methods for a checkout context, with the Stars quote for its price.
// @Tags payment
// @Produce json
// @Success 200 {object} methodsResponse
// @Router /payment/methods [get]
func (h *PaymentHandler) methods(c *gin.Context) {
	checkout, err := checkoutmodels.ParseContext(c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid order parameters"))
		return
	}

	methods := models.Methods()
	options := make([]methodOption, 0, len(methods))
	for _, method := range methods {
		options = append(options, methodOption{Method: method, Label: method.Label()})
	}
	c.JSON(http.StatusOK, methodsResponse{
		Methods: options,
		Stars:   h.stars.Quote(checkout.Price),
	})
}

type selectForm struct {
	Method models.PaymentMethod `json:"method" binding:"required"`
}

// @Summary Select a payment method
// @Description Create the order for a manual method and return the confirmation route. Stars selections create nothing and route to the Stars flow instead.
// @Tags payment
// @Accept json
// @Produce json
// @Param request body selectForm true "Chosen method"
// @Success 200 {object} service.DispatchResult
// @Router /payment/select [post]
func (h *PaymentHandler) selectMethod(c *gin.Context) {
	checkout, err := checkoutmodels.ParseContext(c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid order parameters"))
		return
	}

	var form selectForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Payment method is required"))
		return
	}
	if !form.Method.Valid() {
		middleware.Fail(c, errors.New(errors.ErrCodeBadRequest, "Unknown payment method"))
		return
	}

	raw, _ := middleware.GetTelegramUser(c)
	user := h.identity.Resolve(c.Request.Context(), raw, middleware.GetIdentitySource(c))

	result, err := h.dispatcher.Dispatch(c.Request.Context(), user, checkout, form.Method)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Manual payment instructions
// @Description Return the USDT wallet address and PayPal link shown on the confirmation pages.
// @Tags payment
// @Produce json
// @Success 200 {object} backend.PaymentSettings
// @Router /payment/instructions [get]
func (h *PaymentHandler) instructions(c *gin.Context) {
	settings, err := h.confirmation.Instructions(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Confirm a manual payment
// @Description Mark the order as awaiting review and attach the optional proof uploads.
// @Tags payment
// @Accept mpfd
// @Produce json
// @Param orderId path string true "Order id"
// @Param method formData string true "Payment method"
// @Param screenshot formData file false "Payment screenshot"
// @Param ratingPhoto formData file false "Rating photo"
// @Success 200 {object} map[string]bool
// @Router /payment/orders/{orderId}/confirm [post]
func (h *PaymentHandler) confirm(c *gin.Context) {
	method := models.PaymentMethod(c.PostForm("method"))
	if !method.Valid() || method == models.MethodStars {
		middleware.Fail(c, errors.New(errors.ErrCodeBadRequest, "Unknown payment method"))
		return
	}

	screenshot, closeScreenshot, err := formAttachment(c, "screenshot")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer closeScreenshot()

	ratingPhoto, closeRating, err := formAttachment(c, "ratingPhoto")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer closeRating()

	if err := h.confirmation.Confirm(c.Request.Context(), method, c.Param("orderId"), screenshot, ratingPhoto); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmed": true})
}

// @Summary Pay with Telegram Stars
// @Description Create the order with its invoice in one step and open the invoice through the Telegram bridge. Requires validated init data.
// @Tags payment
// @Produce json
// @Success 200 {object} service.StarsPayment
// @Router /payment/stars [post]
func (h *PaymentHandler) payStars(c *gin.Context) {
	checkout, err := checkoutmodels.ParseContext(c.Request.URL.Query())
	if err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid order parameters"))
		return
	}

	raw, _ := middleware.GetTelegramUser(c)
	user := h.identity.Resolve(c.Request.Context(), raw, middleware.GetIdentitySource(c))

	payment, err := h.stars.Pay(c.Request.Context(), middleware.GetBridge(c), user, checkout)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

type watchResponse struct {
	Outcome service.Outcome `json:"outcome"`
}

// @Summary Wait for Stars payment confirmation
// @Description Long-poll the order until the upstream marks the invoice paid. Closing the connection cancels the watch.
// @Tags payment
// @Produce json
// @Param orderId path string true "Order id"
// @Success 200 {object} watchResponse
// @Router /payment/stars/{orderId}/confirm [get]
func (h *PaymentHandler) confirmStars(c *gin.Context) {
	orderID := c.Param("orderId")
	if orderID == "" {
		middleware.Fail(c, errors.New(errors.ErrCodeBadRequest, "Order id is required"))
		return
	}

	outcome := h.stars.NewWatcher().Watch(c.Request.Context(), orderID)
	switch outcome {
	case service.OutcomeConfirmed:
		c.JSON(http.StatusOK, watchResponse{Outcome: outcome})
	case service.OutcomeTimeout:
		middleware.Fail(c, errors.New(errors.ErrCodeConfirmationTimeout, "Payment was not confirmed in time"))
	default:
		// Client went away; the response is never seen.
		c.Status(http.StatusOK)
	}
}

// formAttachment pulls an optional upload out of the multipart form.
// The returned closer is always safe to call.
func formAttachment(c *gin.Context, field string) (*service.Attachment, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, noop, nil
		}
		return nil, noop, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
	}
	return &service.Attachment{Filename: header.Filename, Content: file}, closerFunc(file), nil
}

func closerFunc(file multipart.File) func() {
	return func() { _ = file.Close() }
}
