package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-site/internal/domains/revalidate/service"
	"heritage-site/internal/shared/pagecache"
	"heritage-site/internal/shared/utils"
	"heritage-site/pkg/logger"
)

// WebhookBody is the part of the content store webhook payload we read
type WebhookBody struct {
	Type string `json:"_type"`
}

type RevalidateHandler struct {
	service service.ServiceInterface
	secret  string
}

func NewRevalidateHandler(svc service.ServiceInterface, secret string) *RevalidateHandler {
	return &RevalidateHandler{
		service: svc,
		secret:  secret,
	}
}

// ════════════════════════════════════════════════════════════════
// POST /api/revalidate?secret  body {_type}
// ════════════════════════════════════════════════════════════════

func (h *RevalidateHandler) RevalidateByType(c *gin.Context) {
	if !utils.SecretMatches(h.secret, c.Query("secret")) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid secret"})
		return
	}

	var body WebhookBody
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Error("failed to parse revalidate webhook", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error revalidating"})
		return
	}

	result, err := h.service.RevalidateType(c.Request.Context(), body.Type)
	if err != nil {
		logger.Error("revalidation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error revalidating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revalidated": true,
		"type":        body.Type,
		"message":     "Revalidated " + body.Type,
		"targets":     result.Targets,
	})
}

// ════════════════════════════════════════════════════════════════
// GET /api/revalidate?secret&path[&type=layout]
// ════════════════════════════════════════════════════════════════

func (h *RevalidateHandler) RevalidateByPath(c *gin.Context) {
	if !utils.SecretMatches(h.secret, c.Query("secret")) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid secret"})
		return
	}

	kind := pagecache.KindPage
	if c.Query("type") == string(pagecache.KindLayout) {
		kind = pagecache.KindLayout
	}

	result, err := h.service.RevalidatePath(c.Request.Context(), c.DefaultQuery("path", "/"), kind)
	if err != nil {
		logger.Error("revalidation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error revalidating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revalidated": true,
		"path":        result.Path,
		"message":     "Revalidated " + result.Path,
	})
}
