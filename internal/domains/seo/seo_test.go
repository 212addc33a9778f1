package seo

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/domains/content/query"
	"heritage-site/internal/domains/content/repository"
	"heritage-site/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sitemapRouter(store *testutil.StubStore) *gin.Engine {
	b := NewSitemapBuilder(repository.NewSanityRepository(store), "https://heritage.example.org/")
	b.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	h := NewHandler(b, "https://heritage.example.org")

	r := gin.New()
	r.GET("/sitemap.xml", h.Sitemap)
	r.GET("/robots.txt", h.Robots)
	return r
}

func fetch(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func parseSitemap(t *testing.T, body []byte) URLSet {
	t.Helper()
	var set URLSet
	require.NoError(t, xml.Unmarshal(body, &set))
	return set
}

func locs(set URLSet) []string {
	out := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		out = append(out, u.Loc)
	}
	return out
}

// ========================================
// SITEMAP
// ========================================

func TestSitemap_IncludesDynamicEntries(t *testing.T) {
	store := testutil.NewStubStore().On(query.SitemapEntries,
		`[{"slug":"bronze-axe","_updatedAt":"2025-05-01T12:00:00Z"}]`)

	w := fetch(sitemapRouter(store), "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "<?xml"))

	set := parseSitemap(t, w.Body.Bytes())
	all := locs(set)
	assert.Contains(t, all, "https://heritage.example.org")
	assert.Contains(t, all, "https://heritage.example.org/digital-museum")
	assert.Contains(t, all, "https://heritage.example.org/digital-museum/bronze-axe")
	assert.Contains(t, all, "https://heritage.example.org/news/bronze-axe")
	assert.Len(t, set.URLs, len(StaticPaths)+4)

	// one query per dynamic type
	assert.Len(t, store.Calls, 4)
}

func TestSitemap_StoreFailureDegradesToStatic(t *testing.T) {
	store := testutil.NewStubStore()
	store.Err = testutil.ErrStoreDown

	w := fetch(sitemapRouter(store), "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)

	set := parseSitemap(t, w.Body.Bytes())
	assert.Len(t, set.URLs, len(StaticPaths))
	assert.Contains(t, locs(set), "https://heritage.example.org/contact")
}

// ========================================
// ROBOTS
// ========================================

func TestRobots(t *testing.T) {
	w := fetch(sitemapRouter(testutil.NewStubStore()), "/robots.txt")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	body := w.Body.String()
	assert.Contains(t, body, "User-agent: *\nAllow: /\n")
	assert.Contains(t, body, "Disallow: /api/\n")
	assert.Contains(t, body, "Disallow: /studio/\n")
	assert.Contains(t, body, "Sitemap: https://heritage.example.org/sitemap.xml")
}

// ========================================
// METADATA & ANALYTICS
// ========================================

func TestBuildMetadata(t *testing.T) {
	site := Site{Name: "Heritage", URL: "https://heritage.example.org/", Description: "Site description"}

	m := BuildMetadata(site, Page{Title: "Bronze axe", Path: "/digital-museum/bronze-axe", Type: "article"})
	assert.Equal(t, "Bronze axe | Heritage", m.Title)
	assert.Equal(t, "Site description", m.Description)
	assert.Equal(t, "https://heritage.example.org/digital-museum/bronze-axe", m.Canonical)
	assert.Equal(t, "article", m.OpenGraph.Type)
	assert.Equal(t, "index, follow", m.Robots)

	home := BuildMetadata(site, Page{NoIndex: true})
	assert.Equal(t, "Heritage", home.Title)
	assert.Equal(t, "https://heritage.example.org/", home.Canonical)
	assert.Equal(t, "website", home.OpenGraph.Type)
	assert.Equal(t, "noindex, nofollow", home.Robots)
}

func TestBuildMetadata_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("excavation ", 40)
	m := BuildMetadata(Site{Name: "H", URL: "https://h.org"}, Page{Description: long})
	assert.LessOrEqual(t, len([]rune(m.Description)), maxDescriptionLength)
	assert.True(t, strings.HasSuffix(m.Description, "…"))
}

func TestTagManager(t *testing.T) {
	a := TagManager("G-ABC123", "GTM-XYZ", false)
	assert.True(t, a.Enabled)
	assert.Equal(t, "https://www.googletagmanager.com/gtag/js?id=G-ABC123", a.GtagScriptURL)
	assert.Equal(t, "https://www.googletagmanager.com/gtm.js?id=GTM-XYZ", a.GTMScriptURL)

	assert.False(t, TagManager("G-ABC123", "", true).Enabled)
	assert.False(t, TagManager("", "", false).Enabled)
}
