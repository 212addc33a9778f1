package pagecache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heritage-site/internal/testutil"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "page:/news", Key("/news", ""))
	assert.Equal(t, "page:/", Key("", ""))
	assert.Equal(t, "page:/digital-museum?category=ceramics&featured=true",
		Key("/digital-museum", "featured=true&category=ceramics"))
}

func TestKey_IgnoresUnknownParams(t *testing.T) {
	assert.Equal(t, Key("/news", "junk=1"), Key("/news", "junk=2"))
	assert.Equal(t, "page:/news", Key("/news", "junk=1&utm_source=mail"))
	assert.Equal(t, "page:/news?limit=3", Key("/news", "limit=3&junk=9"))
	assert.Equal(t, "page:/events?upcoming=true", Key("/events", "upcoming=true&upcoming=false"))
}

func TestInvalidate_BumpsGenerationBeforeDeleting(t *testing.T) {
	ctx := context.Background()
	mc := testutil.NewMemoryCache()
	require.NoError(t, mc.Set(ctx, "page:/news", "x", 0))
	require.NoError(t, mc.Set(ctx, "page:/team", "x", 0))

	gen, err := Generation(ctx, mc)
	require.NoError(t, err)
	assert.Zero(t, gen)

	require.NoError(t, Invalidate(ctx, mc, []Target{Layout("/")}))

	gen, err = Generation(ctx, mc)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)
	assert.False(t, mc.Has("page:/news"))
	assert.False(t, mc.Has("page:/team"))
	assert.True(t, mc.Has(GenerationKey), "root layout must not clear the generation")
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("same generation is kept", func(t *testing.T) {
		mc := testutil.NewMemoryCache()
		stored, err := Store(ctx, mc, "page:/news", "fresh", 0)
		require.NoError(t, err)
		assert.True(t, stored)
		assert.True(t, mc.Has("page:/news"))
	})

	t.Run("render older than a revalidation is dropped", func(t *testing.T) {
		mc := testutil.NewMemoryCache()
		gen, err := Generation(ctx, mc)
		require.NoError(t, err)

		require.NoError(t, Invalidate(ctx, mc, []Target{Page("/news")}))

		stored, err := Store(ctx, mc, "page:/news", "stale", gen)
		require.NoError(t, err)
		assert.False(t, stored)
		assert.False(t, mc.Has("page:/news"))
	})
}

func TestTargetPatterns(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   []string
	}{
		{"list page", Page("/digital-museum"), []string{"page:/digital-museum", `page:/digital-museum\?*`}},
		{"dynamic detail", Page("/digital-museum/[slug]"), []string{"page:/digital-museum/*"}},
		{"root layout", Layout("/"), []string{"page:*"}},
		{"nested layout", Layout("/news"), []string{"page:/news", `page:/news\?*`, "page:/news/*"}},
		{"root page", Page("/"), []string{"page:/", `page:/\?*`}},
		{"literal metacharacters", Page("/odd*path"), []string{`page:/odd\*path`, `page:/odd\*path\?*`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.Patterns())
		})
	}
}
