package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/shared"
	"heritage-site/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(secure bool) (*gin.Engine, *jwt.Manager) {
	tokens := jwt.NewManager("preview-secret", time.Hour)
	h := NewPreviewHandler("preview-secret", tokens, secure)

	r := gin.New()
	r.GET("/api/preview", h.Enter)
	r.GET("/api/exit-preview", h.Exit)
	return r, tokens
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func previewCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == shared.PreviewCookieName {
			return c
		}
	}
	return nil
}

func TestEnter_WrongSecret(t *testing.T) {
	r, _ := setup(false)

	for _, target := range []string{
		"/api/preview?secret=nope&slug=axe&type=artefact",
		"/api/preview?slug=axe&type=artefact",
	} {
		w := get(r, target)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, previewCookie(w))
		assert.Empty(t, w.Header().Get("Location"))
	}
}

func TestEnter_SetsCookieAndRedirects(t *testing.T) {
	r, tokens := setup(true)

	w := get(r, "/api/preview?secret=preview-secret&slug=bronze-axe&type=artefact")
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/digital-museum/bronze-axe", w.Header().Get("Location"))

	ck := previewCookie(w)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 3600, ck.MaxAge)

	_, err := tokens.ValidatePreviewToken(ck.Value)
	assert.NoError(t, err)
}

func TestEnter_NotSecureOutsideProduction(t *testing.T) {
	r, _ := setup(false)
	w := get(r, "/api/preview?secret=preview-secret&slug=x&type=post")
	ck := previewCookie(w)
	require.NotNil(t, ck)
	assert.False(t, ck.Secure)
}

func TestRedirectTarget(t *testing.T) {
	tests := []struct{ docType, slug, want string }{
		{"artefact", "bronze-axe", "/digital-museum/bronze-axe"},
		{"post", "season-2024", "/news/season-2024"},
		{"event", "open-day", "/events/open-day"},
		{"page", "about", "/about"},
		{"teamMember", "ana", "/"},
		{"artefact", "", "/"},
		{"post", "a b", "/news/a%20b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RedirectTarget(tt.docType, tt.slug), tt.docType+"/"+tt.slug)
	}
}

func TestExit_ClearsCookie(t *testing.T) {
	r, _ := setup(false)

	w := get(r, "/api/exit-preview?redirect=/news/season-2024")
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/news/season-2024", w.Header().Get("Location"))

	ck := previewCookie(w)
	require.NotNil(t, ck)
	assert.Equal(t, "", ck.Value)
	assert.True(t, ck.MaxAge < 0, "Max-Age=0 on the wire")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestExit_Redirects(t *testing.T) {
	r, _ := setup(false)

	assert.Equal(t, "/", get(r, "/api/exit-preview").Header().Get("Location"))
	assert.Equal(t, "/", get(r, "/api/exit-preview?redirect=https://evil.example").Header().Get("Location"))
	assert.Equal(t, "/", get(r, "/api/exit-preview?redirect=//evil.example").Header().Get("Location"))
}
