package contentstore

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// =====================================================
// IMAGE URL BUILDER
// =====================================================

const imageCDNBase = "https://cdn.sanity.io/images"

type ImageOptions struct {
	Width  int
	Height int
	Format string // jpg, png, webp
	Fit    string // clip, crop, fill, max, min, scale
}

type ImageBuilder struct {
	projectID string
	dataset   string
	baseURL   string
}

func NewImageBuilder(projectID, dataset string) *ImageBuilder {
	return &ImageBuilder{
		projectID: projectID,
		dataset:   dataset,
		baseURL:   imageCDNBase,
	}
}

// URL turns an asset reference like "image-Tb9Ew8CX-2000x3000-jpg" into a CDN
// URL. Identical inputs always produce identical URLs. The boolean is false
// when ref is empty or not an image reference.
func (b *ImageBuilder) URL(ref string, opts ImageOptions) (string, bool) {
	file, ok := parseImageRef(ref)
	if !ok {
		return "", false
	}

	u := fmt.Sprintf("%s/%s/%s/%s", b.baseURL, b.projectID, b.dataset, file)

	params := url.Values{}
	if opts.Width > 0 {
		params.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		params.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Format != "" {
		params.Set("fm", opts.Format)
	}
	if opts.Fit != "" {
		params.Set("fit", opts.Fit)
	}

	// Encode sorts keys, which keeps the URL stable for caching
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u, true
}

// parseImageRef converts "image-<id>-<w>x<h>-<ext>" into "<id>-<w>x<h>.<ext>"
func parseImageRef(ref string) (string, bool) {
	if !strings.HasPrefix(ref, "image-") {
		return "", false
	}

	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) < 3 {
		return "", false
	}

	ext := parts[len(parts)-1]
	dims := parts[len(parts)-2]
	id := strings.Join(parts[:len(parts)-2], "-")
	if id == "" || ext == "" || !strings.Contains(dims, "x") {
		return "", false
	}

	return fmt.Sprintf("%s-%s.%s", id, dims, ext), true
}
