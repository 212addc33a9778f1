package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/domains/content/service"
	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/internal/shared/response"
	"heritage-site/pkg/logger"
)

// maxNewsLimit caps ?limit on the news list
const maxNewsLimit = 50

type ContentHandler struct {
	service service.ServiceInterface
}

func NewContentHandler(svc service.ServiceInterface) *ContentHandler {
	return &ContentHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// SITE: GET /api/content/settings, /partners, /team
// ════════════════════════════════════════════════════════════════

func (h *ContentHandler) GetSettings(c *gin.Context) {
	page, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *ContentHandler) ListPartners(c *gin.Context) {
	partners, err := h.service.ListPartners(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, partners, len(partners))
}

func (h *ContentHandler) ListTeamMembers(c *gin.Context) {
	members, err := h.service.ListTeamMembers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, members, len(members))
}

// ════════════════════════════════════════════════════════════════
// DIGITAL MUSEUM: GET /api/content/digital-museum?category=&featured=
// ════════════════════════════════════════════════════════════════

func (h *ContentHandler) ListArtefacts(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	filter := model.ArtefactFilter{
		Category: c.Query("category"),
		Featured: featured,
	}

	artefacts, err := h.service.ListArtefacts(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, artefacts, len(artefacts))
}

func (h *ContentHandler) GetArtefact(c *gin.Context) {
	page, err := h.service.GetArtefact(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// NEWS: GET /api/content/news?limit=
// ════════════════════════════════════════════════════════════════

func (h *ContentHandler) ListNewsPosts(c *gin.Context) {
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidInput, "limit must be a non-negative integer")
			return
		}
		if l > maxNewsLimit {
			l = maxNewsLimit
		}
		limit = l
	}

	posts, err := h.service.ListNewsPosts(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, posts, len(posts))
}

func (h *ContentHandler) GetNewsPost(c *gin.Context) {
	page, err := h.service.GetNewsPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// EVENTS: GET /api/content/events?upcoming=
// ════════════════════════════════════════════════════════════════

func (h *ContentHandler) ListEvents(c *gin.Context) {
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))

	events, err := h.service.ListEvents(c.Request.Context(), upcoming)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, events, len(events))
}

func (h *ContentHandler) GetEvent(c *gin.Context) {
	page, err := h.service.GetEvent(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// TIMELINE & RESEARCH
// ════════════════════════════════════════════════════════════════

func (h *ContentHandler) ListTimeline(c *gin.Context) {
	entries, err := h.service.ListTimeline(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, entries, len(entries))
}

func (h *ContentHandler) ListResearch(c *gin.Context) {
	pubs, err := h.service.ListResearch(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.list(c, pubs, len(pubs))
}

func (h *ContentHandler) GetResearch(c *gin.Context) {
	page, err := h.service.GetResearch(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/search?q=
// ════════════════════════════════════════════════════════════════

// Search answers with the bare {results} / {error} shape the search box expects
func (h *ContentHandler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, model.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
			return
		}
		logger.Error("search failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform search"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// ========================================
// HELPERS
// ========================================

func (h *ContentHandler) list(c *gin.Context, data interface{}, total int) {
	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Total:   total,
		Preview: contentstore.IsPreview(c.Request.Context()),
	})
}

func (h *ContentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidCategory):
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())
	default:
		logger.Error("content read failed", err)
		response.ErrorResponse(c, http.StatusBadGateway, model.ErrCodeUnavailable, "Content is temporarily unavailable")
	}
}
