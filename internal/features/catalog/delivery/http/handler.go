package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/middleware"
	"storefront-gateway/internal/features/catalog/service"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/home", h.home)
	router.GET("/branding", h.branding)

	products := router.Group("/products")
	{
		products.GET("", h.products)
		products.GET("/:id", h.product)
	}

	bundles := router.Group("/bundles")
	{
		bundles.GET("", h.bundles)
		bundles.GET("/:id", h.bundle)
	}

	wishlist := router.Group("/wishlist")
	{
		wishlist.GET("", h.wishlist)
		wishlist.GET("/:id", h.wishlistItem)
		wishlist.POST("/:id/donate", h.donate)
	}
}

// @Summary Storefront landing
// @Description Branding, products and bundles in one payload.
// @Tags catalog
// @Produce json
// @Success 200 {object} service.Home
// @Router /home [get]
func (h *CatalogHandler) home(c *gin.Context) {
	home, err := h.service.Home(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *CatalogHandler) branding(c *gin.Context) {
	branding, err := h.service.Branding(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, branding)
}

func (h *CatalogHandler) products(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) product(c *gin.Context) {
	product, err := h.service.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) bundles(c *gin.Context) {
	bundles, err := h.service.Bundles(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bundles)
}

func (h *CatalogHandler) bundle(c *gin.Context) {
	bundle, err := h.service.Bundle(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *CatalogHandler) wishlist(c *gin.Context) {
	items, err := h.service.Wishlist(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) wishlistItem(c *gin.Context) {
	item, err := h.service.WishlistItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type donateForm struct {
	Amount  string `json:"amount"`
	Message string `json:"message"`
}

// @Summary Start a wishlist donation
// @Description Resolve the donation amount and return the payment route to continue on.
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Wishlist item id"
// @Param request body donateForm true "Donation amount and optional message"
// @Success 200 {object} service.Donation
// @Router /wishlist/{id}/donate [post]
func (h *CatalogHandler) donate(c *gin.Context) {
	var form donateForm
	// Empty bodies are fine; the item price becomes the amount.
	_ = c.ShouldBindJSON(&form)

	donation, err := h.service.StartDonation(c.Request.Context(), c.Param("id"), form.Amount, form.Message)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}
