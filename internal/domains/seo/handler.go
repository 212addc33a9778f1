package seo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-site/pkg/logger"
)

// cacheOneDay is sent with both crawler documents
const cacheOneDay = "public, max-age=86400"

type Handler struct {
	sitemap *SitemapBuilder
	siteURL string
}

func NewHandler(sitemap *SitemapBuilder, siteURL string) *Handler {
	return &Handler{sitemap: sitemap, siteURL: siteURL}
}

// Sitemap never fails: content store errors degrade to the static entries
func (h *Handler) Sitemap(c *gin.Context) {
	set, err := h.sitemap.Build(c.Request.Context())
	if err != nil {
		logger.Error("sitemap: serving static entries only", err)
	}

	body, err := set.Marshal()
	if err != nil {
		logger.Error("sitemap: marshal failed", err)
		set.URLs = h.sitemap.staticURLs()
		body, _ = set.Marshal()
	}

	c.Header("Cache-Control", cacheOneDay)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *Handler) Robots(c *gin.Context) {
	c.Header("Cache-Control", cacheOneDay)
	c.String(http.StatusOK, Robots(h.siteURL))
}
