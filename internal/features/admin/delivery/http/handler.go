package http

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/middleware"
	"storefront-gateway/internal/features/admin/models"
	"storefront-gateway/internal/features/admin/service"
	paymentmodels "storefront-gateway/internal/features/payment/models"
	"storefront-gateway/internal/platform/backend"
)

type AdminHandler struct {
	catalog  *service.CatalogAdminService
	orders   *service.OrderAdminService
	settings *service.SettingsService
}

func NewAdminHandler(catalog *service.CatalogAdminService, orders *service.OrderAdminService, settings *service.SettingsService) *AdminHandler {
	return &AdminHandler{catalog: catalog, orders: orders, settings: settings}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", h.createProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}

	bundles := router.Group("/bundles")
	{
		bundles.POST("", h.createBundle)
		bundles.PUT("/:id", h.updateBundle)
		bundles.DELETE("/:id", h.deleteBundle)
	}

	wishlist := router.Group("/wishlist")
	{
		wishlist.POST("", h.createWishlistItem)
		wishlist.PUT("/:id", h.updateWishlistItem)
		wishlist.DELETE("/:id", h.deleteWishlistItem)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.PATCH("/:id/status", h.setOrderStatus)
		orders.PATCH("/:id/payment-status", h.setPaymentStatus)
		orders.POST("/:id/message", h.messageCustomer)
	}

	router.GET("/payments", h.paymentSettings)
	router.PATCH("/payments", h.updatePaymentSettings)
	router.PATCH("/branding", h.updateBranding)
	router.POST("/upload", h.upload)
}

func (h *AdminHandler) productInput(c *gin.Context) (service.ProductInput, []func(), error) {
	media, closers, err := stagedMedia(c)
	if err != nil {
		return service.ProductInput{}, closers, err
	}
	in := service.ProductInput{
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Description: c.PostForm("description"),
		Media:       media,
	}
	if in.Name == "" || in.Price == "" {
		return service.ProductInput{}, closers, errors.New(errors.ErrCodeBadRequest, "Name and price are required")
	}
	return in, closers, nil
}

// @Summary Create a product
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param name formData string true "Name"
// @Param price formData string true "Price"
// @Param image formData file false "Cover image"
// @Success 201 {object} map[string]bool
// @Router /admin/products [post]
func (h *AdminHandler) createProduct(c *gin.Context) {
	in, closers, err := h.productInput(c)
	defer runAll(closers)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.catalog.CreateProduct(c.Request.Context(), in); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *AdminHandler) updateProduct(c *gin.Context) {
	in, closers, err := h.productInput(c)
	defer runAll(closers)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), in); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) bundleInput(c *gin.Context) (service.BundleInput, []func(), error) {
	media, closers, err := stagedMedia(c)
	if err != nil {
		return service.BundleInput{}, closers, err
	}
	in := service.BundleInput{
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Description: c.PostForm("description"),
		Exclusive:   c.PostForm("exclusive") == "true",
		Content:     c.PostForm("content"),
		Media:       media,
	}
	if in.Name == "" || in.Price == "" {
		return service.BundleInput{}, closers, errors.New(errors.ErrCodeBadRequest, "Name and price are required")
	}
	return in, closers, nil
}

// @Summary Create a bundle
// @Description Create a bundle with its cover, gallery images and videos in one multipart submission.
// @Tags admin
// @Accept mpfd
// @Produce json
// @Success 201 {object} map[string]bool
// @Router /admin/bundles [post]
func (h *AdminHandler) createBundle(c *gin.Context) {
	in, closers, err := h.bundleInput(c)
	defer runAll(closers)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.catalog.CreateBundle(c.Request.Context(), in); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *AdminHandler) updateBundle(c *gin.Context) {
	in, closers, err := h.bundleInput(c)
	defer runAll(closers)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.catalog.UpdateBundle(c.Request.Context(), c.Param("id"), in); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) deleteBundle(c *gin.Context) {
	if err := h.catalog.DeleteBundle(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type wishlistForm struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
}

func (h *AdminHandler) createWishlistItem(c *gin.Context) {
	var form wishlistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid wishlist item"))
		return
	}
	item := &backend.WishlistItem{
		Name:        form.Name,
		Price:       form.Price,
		Image:       form.Image,
		Link:        form.Link,
		Description: form.Description,
	}
	if err := h.catalog.CreateWishlistItem(c.Request.Context(), item); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true})
}

func (h *AdminHandler) updateWishlistItem(c *gin.Context) {
	var form wishlistForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid wishlist item"))
		return
	}
	item := &backend.WishlistItem{
		Name:        form.Name,
		Price:       form.Price,
		Image:       form.Image,
		Link:        form.Link,
		Description: form.Description,
	}
	if err := h.catalog.UpdateWishlistItem(c.Request.Context(), c.Param("id"), item); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) deleteWishlistItem(c *gin.Context) {
	if err := h.catalog.DeleteWishlistItem(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// @Summary List orders
// @Description All orders with the transitions available from their current state. Optional status filter.
// @Tags admin
// @Produce json
// @Param status query string false "Fulfillment status filter"
// @Success 200 {array} service.OrderView
// @Router /admin/orders [get]
func (h *AdminHandler) listOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) getOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusForm struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) setOrderStatus(c *gin.Context) {
	var form statusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Status is required"))
		return
	}
	order, err := h.orders.SetStatus(c.Request.Context(), c.Param("id"), paymentmodels.OrderStatus(form.Status))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) setPaymentStatus(c *gin.Context) {
	var form statusForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Status is required"))
		return
	}
	order, err := h.orders.SetPaymentStatus(c.Request.Context(), c.Param("id"), paymentmodels.PaymentStatus(form.Status))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type messageForm struct {
	Message string `json:"message" binding:"required"`
}

func (h *AdminHandler) messageCustomer(c *gin.Context) {
	var form messageForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Message text is required"))
		return
	}
	if err := h.orders.Message(c.Request.Context(), c.Param("id"), form.Message); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func (h *AdminHandler) paymentSettings(c *gin.Context) {
	settings, err := h.settings.PaymentSettings(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type paymentSettingsForm struct {
	USDTAddress string `json:"usdtAddress"`
	PayPalLink  string `json:"paypalLink"`
}

func (h *AdminHandler) updatePaymentSettings(c *gin.Context) {
	var form paymentSettingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid payment settings"))
		return
	}
	err := h.settings.UpdatePaymentSettings(c.Request.Context(), &backend.PaymentSettings{
		USDTAddress: form.USDTAddress,
		PayPalLink:  form.PayPalLink,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *AdminHandler) updateBranding(c *gin.Context) {
	banner, closeBanner, err := formUpload(c, "banner")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer closeBanner()

	logo, closeLogo, err := formUpload(c, "logo")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer closeLogo()

	branding, err := h.settings.UpdateBranding(c.Request.Context(), service.BrandingInput{
		Name:   c.PostForm("name"),
		TgLink: c.PostForm("tgLink"),
		Link:   c.PostForm("link"),
		Banner: banner,
		Logo:   logo,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, branding)
}

func (h *AdminHandler) upload(c *gin.Context) {
	file, closeFile, err := formUpload(c, "file")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	defer closeFile()
	if file == nil {
		middleware.Fail(c, errors.New(errors.ErrCodeBadRequest, "File is required"))
		return
	}

	url, err := h.settings.UploadMedia(c.Request.Context(), file.Name, file.Content)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// stagedMedia reads the cover, galleries and deletion marks out of a
// multipart catalog submission.
func stagedMedia(c *gin.Context) (*models.StagedMedia, []func(), error) {
	media := &models.StagedMedia{}
	var closers []func()

	cover, closeCover, err := formUpload(c, "image")
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, closeCover)
	if cover != nil {
		media.Cover = cover
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		return nil, closers, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
	}
	if form != nil {
		for _, header := range form.File["images"] {
			file, err := header.Open()
			if err != nil {
				return nil, closers, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
			}
			closers = append(closers, fileCloser(file))
			media.StageImage(header.Filename, file)
		}
		for _, header := range form.File["videos"] {
			file, err := header.Open()
			if err != nil {
				return nil, closers, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
			}
			closers = append(closers, fileCloser(file))
			media.StageVideo(header.Filename, file)
		}
		for _, id := range form.Value["imagesToDelete"] {
			media.MarkImageDeleted(id)
		}
		for _, id := range form.Value["videosToDelete"] {
			media.MarkVideoDeleted(id)
		}
	}
	return media, closers, nil
}

// formUpload pulls an optional single file out of the request form.
func formUpload(c *gin.Context, field string) (*models.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, noop, nil
		}
		return nil, noop, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload")
	}
	return &models.Upload{Name: header.Filename, Content: file}, fileCloser(file), nil
}

func fileCloser(file multipart.File) func() {
	return func() { _ = file.Close() }
}

func runAll(closers []func()) {
	for _, closeFn := range closers {
		if closeFn != nil {
			closeFn()
		}
	}
}
