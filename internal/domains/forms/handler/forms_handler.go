package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"heritage-site/internal/domains/forms/model"
	"heritage-site/internal/domains/forms/service"
	"heritage-site/pkg/logger"
)

// UnsubscribePath is where the confirmation page posts back to
const UnsubscribePath = "/api/newsletter/unsubscribe"

type FormsHandler struct {
	service  service.ServiceInterface
	siteName string
}

func NewFormsHandler(svc service.ServiceInterface, siteName string) *FormsHandler {
	return &FormsHandler{
		service:  svc,
		siteName: siteName,
	}
}

// ════════════════════════════════════════════════════════════════
// CONTACT: POST /api/contact
// ════════════════════════════════════════════════════════════════

func (h *FormsHandler) SubmitContact(c *gin.Context) {
	// Step 1: Parse body
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.parseError(c, err)
		return
	}

	// Step 2: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.validationError(c, model.MsgMissingFields, err)
		return
	}

	// Step 3: Relay in the background, acknowledge right away
	id := h.service.SubmitContact(c.Request.Context(), req)
	logger.Debug("contact submission accepted: " + id)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": model.MsgContactReceived})
}

// ════════════════════════════════════════════════════════════════
// NEWSLETTER: POST /api/newsletter
// ════════════════════════════════════════════════════════════════

func (h *FormsHandler) SubscribeNewsletter(c *gin.Context) {
	var req model.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.parseError(c, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		h.validationError(c, model.MsgInvalidEmail, err)
		return
	}

	h.service.SubscribeNewsletter(c.Request.Context(), req)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": model.MsgSubscribed})
}

// ════════════════════════════════════════════════════════════════
// UNSUBSCRIBE: GET / POST /api/newsletter/unsubscribe
// ════════════════════════════════════════════════════════════════

// UnsubscribePage serves the confirmation page. It changes nothing.
func (h *FormsHandler) UnsubscribePage(c *gin.Context) {
	req := model.UnsubscribeRequest{
		Email: c.Query("email"),
		Token: c.Query("token"),
	}
	req.Normalize()
	if req.Validate() != nil {
		c.String(http.StatusBadRequest, model.MsgMissingUnsubParam)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{
		Template: unsubscribePage,
		Data: unsubscribePageData{
			SiteName: h.siteName,
			Email:    req.Email,
			Token:    req.Token,
			Action:   UnsubscribePath,
		},
	})
}

func (h *FormsHandler) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.parseError(c, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		h.validationError(c, model.MsgMissingFields, err)
		return
	}

	h.service.Unsubscribe(c.Request.Context(), req)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": model.MsgUnsubscribed})
}

// ========================================
// HELPERS
// ========================================

// parseError: an unreadable body is treated as an unexpected failure
func (h *FormsHandler) parseError(c *gin.Context, err error) {
	logger.Error("failed to parse form body", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": model.MsgInternalError})
}

func (h *FormsHandler) validationError(c *gin.Context, message string, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message, "errors": verrs})
}
