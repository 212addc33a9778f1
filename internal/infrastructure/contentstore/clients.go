package contentstore

import "context"

type previewKey struct{}

// ContextWithPreview marks ctx as a preview-mode read
func ContextWithPreview(ctx context.Context) context.Context {
	return context.WithValue(ctx, previewKey{}, true)
}

// IsPreview reports whether ctx was marked by ContextWithPreview
func IsPreview(ctx context.Context) bool {
	preview, _ := ctx.Value(previewKey{}).(bool)
	return preview
}

// Clients routes each query to the public or the preview client depending on
// the preview flag carried by the request context.
type Clients struct {
	Public  Querier
	Preview Querier
}

func NewClients(public, preview Querier) *Clients {
	return &Clients{Public: public, Preview: preview}
}

// For returns the client for the given mode. Without a preview client
// configured, preview reads fall back to the public one.
func (c *Clients) For(preview bool) Querier {
	if preview && c.Preview != nil {
		return c.Preview
	}
	return c.Public
}

func (c *Clients) Query(ctx context.Context, query string, params map[string]interface{}, dest interface{}) error {
	return c.For(IsPreview(ctx)).Query(ctx, query, params, dest)
}
