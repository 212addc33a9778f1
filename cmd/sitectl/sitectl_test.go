package main

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/domains/seo"
	"heritage-site/internal/shared"
	"heritage-site/internal/shared/pagecache"
	"heritage-site/internal/testutil"
	"heritage-site/pkg/cache"
	"heritage-site/pkg/jwt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("CONTENT_PROJECT_ID", "proj1")
	t.Setenv("PREVIEW_SECRET", "preview-secret")

	// flag values outlive a single Execute
	layout = false
	sitemapOut = "-"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", ".env"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPreviewTokenCommand(t *testing.T) {
	out, err := run(t, "preview-token")
	require.NoError(t, err)

	name, value, ok := strings.Cut(strings.TrimSpace(out), "=")
	require.True(t, ok)
	assert.Equal(t, shared.PreviewCookieName, name)

	claims, err := jwt.NewManager("preview-secret", time.Hour).ValidatePreviewToken(value)
	require.NoError(t, err)
	assert.True(t, claims.Preview)
}

func TestRevalidateTypeCommand_RequiresType(t *testing.T) {
	_, err := run(t, "revalidate", "type")
	assert.Error(t, err)
}

// useMemoryCache points the revalidate commands at mc for the test
func useMemoryCache(t *testing.T, mc *testutil.MemoryCache) {
	t.Helper()
	orig := openPageCache
	openPageCache = func(ctx context.Context) (cache.Cache, func(), error) {
		return mc, func() {}, nil
	}
	t.Cleanup(func() { openPageCache = orig })
}

func seedPages(t *testing.T, mc *testutil.MemoryCache, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, mc.Set(context.Background(), k, "x", 0))
	}
}

func TestRevalidatePathCommand_Layout(t *testing.T) {
	mc := testutil.NewMemoryCache()
	seedPages(t, mc, "page:/news", "page:/news?limit=3", "page:/news/dig-season", "page:/events")
	useMemoryCache(t, mc)

	out, err := run(t, "revalidate", "path", "news", "--layout")
	require.NoError(t, err)

	var res struct {
		Path    string             `json:"path"`
		Targets []pagecache.Target `json:"targets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "/news", res.Path)
	assert.Equal(t, []pagecache.Target{pagecache.Layout("/news")}, res.Targets)

	assert.False(t, mc.Has("page:/news"))
	assert.False(t, mc.Has("page:/news?limit=3"))
	assert.False(t, mc.Has("page:/news/dig-season"))
	assert.True(t, mc.Has("page:/events"))
}

func TestRevalidatePathCommand_PageKeepsNested(t *testing.T) {
	mc := testutil.NewMemoryCache()
	seedPages(t, mc, "page:/news", "page:/news/dig-season")
	useMemoryCache(t, mc)

	out, err := run(t, "revalidate", "path", "/news")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "page"`)

	assert.False(t, mc.Has("page:/news"))
	assert.True(t, mc.Has("page:/news/dig-season"))
}

func TestRevalidateTypeCommand(t *testing.T) {
	mc := testutil.NewMemoryCache()
	seedPages(t, mc, "page:/digital-museum", "page:/digital-museum/bronze-axe", "page:/team")
	useMemoryCache(t, mc)

	out, err := run(t, "revalidate", "type", "artefact")
	require.NoError(t, err)
	assert.Contains(t, out, `"artefact"`)

	assert.False(t, mc.Has("page:/digital-museum"))
	assert.False(t, mc.Has("page:/digital-museum/bronze-axe"))
	assert.True(t, mc.Has("page:/team"))
}

func TestSitemapCommand_ContentStoreDownWritesStaticEntries(t *testing.T) {
	var queried bool
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queried = true
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"upstream failure"}`))
	}))
	defer store.Close()

	t.Setenv("CONTENT_API_BASE_URL", store.URL)
	t.Setenv("SITE_URL", "https://heritage.example.org")
	outFile := filepath.Join(t.TempDir(), "sitemap.xml")

	_, err := run(t, "sitemap", "-o", outFile)
	require.NoError(t, err)
	assert.True(t, queried)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), xml.Header))

	var set seo.URLSet
	require.NoError(t, xml.Unmarshal(raw, &set))
	require.Len(t, set.URLs, len(seo.StaticPaths))
	assert.Equal(t, "https://heritage.example.org", set.URLs[0].Loc)
	for _, u := range set.URLs {
		assert.NotContains(t, u.Loc, "/digital-museum/")
	}
}

func TestSitemapCommand_IncludesArtefacts(t *testing.T) {
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[{"slug":"bronze-axe","_updatedAt":"2024-05-02T09:00:00Z"}]}`))
	}))
	defer store.Close()

	t.Setenv("CONTENT_API_BASE_URL", store.URL)
	t.Setenv("SITE_URL", "https://heritage.example.org")

	out, err := run(t, "sitemap")
	require.NoError(t, err)
	assert.Contains(t, out, "<loc>https://heritage.example.org/digital-museum/bronze-axe</loc>")
	assert.Contains(t, out, "<lastmod>2024-05-02</lastmod>")
}
