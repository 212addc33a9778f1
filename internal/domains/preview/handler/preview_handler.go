package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/shared"
	"heritage-site/internal/shared/utils"
	"heritage-site/pkg/jwt"
	"heritage-site/pkg/logger"
)

type PreviewHandler struct {
	secret string
	tokens *jwt.Manager
	secure bool
}

// NewPreviewHandler: secure marks the cookie Secure, set in production
func NewPreviewHandler(secret string, tokens *jwt.Manager, secure bool) *PreviewHandler {
	return &PreviewHandler{
		secret: secret,
		tokens: tokens,
		secure: secure,
	}
}

// ════════════════════════════════════════════════════════════════
// ENTER: GET /api/preview?secret&slug&type
// ════════════════════════════════════════════════════════════════

func (h *PreviewHandler) Enter(c *gin.Context) {
	// Step 1: Check the shared secret
	if !utils.SecretMatches(h.secret, c.Query("secret")) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	// Step 2: Issue the preview cookie
	token, err := h.tokens.GeneratePreviewToken()
	if err != nil {
		logger.Error("failed to sign preview token", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(shared.PreviewCookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.secure, true)

	// Step 3: Send the editor to the document
	c.Redirect(http.StatusTemporaryRedirect, RedirectTarget(c.Query("type"), c.Query("slug")))
}

// ════════════════════════════════════════════════════════════════
// EXIT: GET /api/exit-preview?redirect
// ════════════════════════════════════════════════════════════════

func (h *PreviewHandler) Exit(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(shared.PreviewCookieName, "", -1, "/", "", h.secure, true)

	c.Redirect(http.StatusTemporaryRedirect, SafeRedirect(c.Query("redirect")))
}

// ========================================
// HELPERS
// ========================================

// RedirectTarget maps a document type and slug to its page
func RedirectTarget(docType, slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return "/"
	}
	escaped := url.PathEscape(slug)

	switch docType {
	case model.TypeArtefact:
		return "/digital-museum/" + escaped
	case model.TypePost:
		return "/news/" + escaped
	case model.TypeEvent:
		return "/events/" + escaped
	case model.TypePage:
		return "/" + escaped
	}
	return "/"
}

// SafeRedirect keeps exit redirects on this site
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
