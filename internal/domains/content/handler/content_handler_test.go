package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/domains/content/query"
	"heritage-site/internal/domains/content/repository"
	"heritage-site/internal/domains/content/service"
	"heritage-site/internal/domains/seo"
	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(store *testutil.StubStore) *gin.Engine {
	svc := service.NewContentService(
		repository.NewSanityRepository(store),
		contentstore.NewImageBuilder("proj1", "production"),
		service.Options{Site: seo.Site{Name: "Heritage", URL: "https://heritage.example.org"}},
	)
	h := NewContentHandler(svc)

	r := gin.New()
	r.GET("/api/search", h.Search)
	content := r.Group("/api/content")
	{
		content.GET("/digital-museum", h.ListArtefacts)
		content.GET("/digital-museum/:slug", h.GetArtefact)
		content.GET("/news", h.ListNewsPosts)
		content.GET("/timeline", h.ListTimeline)
	}
	return r
}

func serve(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestContentHandler_GetArtefact(t *testing.T) {
	store := testutil.NewStubStore().On(query.ArtefactBySlug,
		`{"_id":"a1","title":"Bronze axe","slug":{"current":"bronze-axe"}}`)
	r := setupRouter(store)

	t.Run("found", func(t *testing.T) {
		w := serve(r, "/api/content/digital-museum/bronze-axe")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Document struct {
					Slug struct {
						Current string `json:"current"`
					} `json:"slug"`
				} `json:"document"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "bronze-axe", body.Data.Document.Slug.Current)
	})

	t.Run("missing slug is 404", func(t *testing.T) {
		w := serve(setupRouter(testutil.NewStubStore()), "/api/content/digital-museum/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestContentHandler_StoreDown(t *testing.T) {
	store := testutil.NewStubStore()
	store.Err = testutil.ErrStoreDown

	w := serve(setupRouter(store), "/api/content/digital-museum")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "content store unavailable")
}

func TestContentHandler_ListNewsPosts_Limit(t *testing.T) {
	store := testutil.NewStubStore()
	r := setupRouter(store)

	w := serve(r, "/api/content/news?limit=500")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxNewsLimit, store.LastCall().Params["limit"])

	w = serve(r, "/api/content/news?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_ListTimeline_BadCategory(t *testing.T) {
	w := serve(setupRouter(testutil.NewStubStore()), "/api/content/timeline?category=gossip")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContentHandler_Search(t *testing.T) {
	store := testutil.NewStubStore().On(query.Search,
		`[{"_id":"a1","_type":"artefact","title":"Amphora","slug":"amphora","_createdAt":"2024-03-01T10:00:00Z"}]`)

	t.Run("results", func(t *testing.T) {
		w := serve(setupRouter(store), "/api/search?q=amph")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Results []map[string]interface{} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Results, 1)
		assert.Equal(t, "amphora", body.Results[0]["slug"])
	})

	t.Run("missing query", func(t *testing.T) {
		w := serve(setupRouter(store), "/api/search")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Query parameter 'q' is required"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		failing := testutil.NewStubStore()
		failing.Err = testutil.ErrStoreDown
		w := serve(setupRouter(failing), "/api/search?q=axe")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
