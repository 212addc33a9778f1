// Package pagecache names the cache entries holding rendered page data and
// maps revalidation targets onto them.
package pagecache

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"heritage-site/pkg/cache"
)

// KeyPrefix prefixes every page cache key
const KeyPrefix = "page:"

// KeyParams are the query parameters content routes read. Anything else is
// left out of the key so arbitrary parameters cannot mint new entries.
var KeyParams = []string{"category", "featured", "limit", "type", "upcoming"}

// GenerationKey counts revalidations. It sits outside the "page:" namespace
// so a root layout invalidation never deletes it.
const GenerationKey = "pagegen"

// Key returns the cache key for a site path and its raw query string. Only
// KeyParams are kept, first value each, in sorted order.
func Key(path, rawQuery string) string {
	if path == "" {
		path = "/"
	}
	key := KeyPrefix + path
	if rawQuery == "" {
		return key
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return key
	}
	kept := url.Values{}
	for _, name := range KeyParams {
		if v := values.Get(name); v != "" {
			kept.Set(name, v)
		}
	}
	if len(kept) == 0 {
		return key
	}
	return key + "?" + kept.Encode()
}

// Generation returns the current revalidation generation, 0 before the first one
func Generation(ctx context.Context, c cache.Cache) (int64, error) {
	var gen int64
	if _, err := c.Get(ctx, GenerationKey, &gen); err != nil {
		return 0, err
	}
	return gen, nil
}

// Invalidate bumps the generation and then deletes every entry the targets cover.
func Invalidate(ctx context.Context, c cache.Cache, targets []Target) error {
	if _, err := c.Incr(ctx, GenerationKey); err != nil {
		return fmt.Errorf("bump generation: %w", err)
	}
	for _, t := range targets {
		for _, pattern := range t.Patterns() {
			if err := c.DeletePattern(ctx, pattern); err != nil {
				return fmt.Errorf("invalidate %s: %w", t.Path, err)
			}
		}
	}
	return nil
}

// Store writes a page rendered while the generation was gen. If a
// revalidation ran since, the entry is removed again and stored is false.
// Invalidate bumps before deleting, so either this check sees the bump or
// the revalidation's delete lands after the write.
func Store(ctx context.Context, c cache.Cache, key string, value interface{}, gen int64) (stored bool, err error) {
	// ttl 0: entries live until revalidated
	if err := c.Set(ctx, key, value, 0); err != nil {
		return false, err
	}
	now, err := Generation(ctx, c)
	if err == nil && now == gen {
		return true, nil
	}
	if delErr := c.DeletePattern(ctx, EscapeGlob(key)); delErr != nil {
		return false, delErr
	}
	return false, err
}

type Kind string

const (
	// KindPage invalidates one route. A "[slug]" segment covers every
	// document under that route.
	KindPage Kind = "page"
	// KindLayout invalidates everything rendered under the path
	KindLayout Kind = "layout"
)

// Target is one revalidation target, "/news/[slug]" or "/" as layout
type Target struct {
	Path string `json:"path"`
	Kind Kind   `json:"type"`
}

func Page(path string) Target   { return Target{Path: path, Kind: KindPage} }
func Layout(path string) Target { return Target{Path: path, Kind: KindLayout} }

// Patterns returns the Redis glob patterns the target invalidates. Literal
// parts of the path are escaped, so "?" only ever matches a query separator.
func (t Target) Patterns() []string {
	path := t.Path
	if path == "" {
		path = "/"
	}

	if t.Kind == KindLayout {
		if path == "/" {
			return []string{KeyPrefix + "*"}
		}
		p := KeyPrefix + EscapeGlob(path)
		return []string{p, p + `\?*`, p + "/*"}
	}

	if i := strings.Index(path, "["); i >= 0 {
		return []string{KeyPrefix + EscapeGlob(path[:i]) + "*"}
	}
	p := KeyPrefix + EscapeGlob(path)
	return []string{p, p + `\?*`}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// EscapeGlob escapes the Redis glob metacharacters in s
func EscapeGlob(s string) string {
	return globEscaper.Replace(s)
}
