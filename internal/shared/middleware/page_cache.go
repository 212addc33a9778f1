package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/internal/shared/pagecache"
	"heritage-site/pkg/cache"
)

// cachedPage is what the page cache stores per key
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves successful GET responses from c until revalidation
// deletes them. The cache key is the request path with stripPrefix removed
// plus the recognised query parameters.
// Preview requests bypass the cache in both directions and a failing cache
// is treated as a miss.
func PageCache(c cache.Cache, stripPrefix string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil || ctx.Request.Method != http.MethodGet || contentstore.IsPreview(ctx.Request.Context()) {
			ctx.Header("X-Cache", "BYPASS")
			ctx.Next()
			return
		}

		path := strings.TrimPrefix(ctx.Request.URL.Path, stripPrefix)
		key := pagecache.Key(path, ctx.Request.URL.RawQuery)

		var page cachedPage
		found, err := c.Get(ctx.Request.Context(), key, &page)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("page cache read failed")
		}
		if found {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(page.Status, page.ContentType, page.Body)
			ctx.Abort()
			return
		}

		// a revalidation between here and the write must win over this render
		gen, genErr := pagecache.Generation(ctx.Request.Context(), c)

		rec := &bodyRecorder{ResponseWriter: ctx.Writer}
		ctx.Writer = rec
		ctx.Header("X-Cache", "MISS")

		ctx.Next()

		if rec.Status() != http.StatusOK || err != nil || genErr != nil {
			return
		}
		entry := cachedPage{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		stored, err := pagecache.Store(ctx.Request.Context(), c, key, entry, gen)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("page cache write failed")
		} else if !stored {
			log.Debug().Str("key", key).Msg("page cache write dropped, revalidated during render")
		}
	}
}
