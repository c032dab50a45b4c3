package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/common/errors"
	"storefront-gateway/internal/common/middleware"
	"storefront-gateway/internal/features/support/service"
)

type SupportHandler struct {
	inbox  *service.InboxService
	poller *service.Poller
}

func NewSupportHandler(inbox *service.InboxService, poller *service.Poller) *SupportHandler {
	return &SupportHandler{inbox: inbox, poller: poller}
}

func (h *SupportHandler) RegisterRoutes(router *gin.RouterGroup) {
	support := router.Group("/support")
	{
		support.GET("/chats", h.chats)
		support.GET("/chats/:userId/messages", h.messages)
		support.POST("/chats/:userId/messages", h.send)
		support.DELETE("/watch", h.unwatch)
	}
}

// @Summary Support inbox
// @Description Chat list from the poller snapshot. A user query parameter deep-links into that thread and retargets the thread watcher.
// @Tags support
// @Produce json
// @Param user query string false "Thread to open"
// @Success 200 {object} map[string]interface{}
// @Router /admin/support/chats [get]
func (h *SupportHandler) chats(c *gin.Context) {
	chats, err := h.inbox.Chats(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response := gin.H{"chats": chats}
	if user := c.Query("user"); user != "" {
		h.poller.Watch(user)
		response["activeUser"] = user
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Thread messages
// @Description Messages for one thread. Opening a thread retargets the watcher; the previous thread stops being polled.
// @Tags support
// @Produce json
// @Param userId path string true "Thread user id"
// @Success 200 {array} backend.SupportMessage
// @Router /admin/support/chats/{userId}/messages [get]
func (h *SupportHandler) messages(c *gin.Context) {
	userID := c.Param("userId")
	h.poller.Watch(userID)

	messages, err := h.inbox.Messages(c.Request.Context(), userID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// @Summary Reply in a thread
// @Description Send text and optionally one media attachment, which is uploaded first.
// @Tags support
// @Accept mpfd
// @Produce json
// @Param userId path string true "Thread user id"
// @Param message formData string false "Message text"
// @Param media formData file false "Attachment"
// @Success 200 {object} map[string]bool
// @Router /admin/support/chats/{userId}/messages [post]
func (h *SupportHandler) send(c *gin.Context) {
	out := service.Outgoing{
		Message: c.PostForm("message"),
		OrderID: c.PostForm("orderId"),
	}

	header, err := c.FormFile("media")
	switch err {
	case nil:
		file, openErr := header.Open()
		if openErr != nil {
			middleware.Fail(c, errors.Wrap(openErr, errors.ErrCodeBadRequest, "Invalid upload"))
			return
		}
		defer file.Close()
		out.Media = file
		out.MediaName = header.Filename
		out.MediaType = c.PostForm("mediaType")
	case http.ErrMissingFile, http.ErrNotMultipart:
	default:
		middleware.Fail(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid upload"))
		return
	}

	if err := h.inbox.Send(c.Request.Context(), c.Param("userId"), out); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// @Summary Stop watching a thread
// @Tags support
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /admin/support/watch [delete]
func (h *SupportHandler) unwatch(c *gin.Context) {
	h.poller.Watch("")
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}
