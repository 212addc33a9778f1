// Package relay forwards form submissions and unsubscribe requests to the
// third-party services that do the actual delivery.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"heritage-site/internal/shared"
)

var (
	// ErrNotConfigured is returned when no relay is set up for a form kind
	ErrNotConfigured = errors.New("relay not configured")
)

// defaultTimeout bounds a single outbound call when the caller sets none
const defaultTimeout = 10 * time.Second

// Submission is one validated form submission
type Submission struct {
	ID     string
	Kind   shared.FormKind
	Fields map[string]string
}

// Relay delivers a submission. Implementations do not retry.
type Relay interface {
	Send(ctx context.Context, sub Submission) error
}

// MailingListProvider removes an address from an external mailing list.
// An address the provider does not know is not an error.
type MailingListProvider interface {
	Name() string
	Unsubscribe(ctx context.Context, email string) error
}

// StatusError reports a non-success answer from an upstream service
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded %d: %s", e.Service, e.StatusCode, e.Body)
}

// =====================================================
// ROUTER
// =====================================================

// Router picks the relay registered for a submission's kind
type Router struct {
	relays map[shared.FormKind]Relay
}

func NewRouter() *Router {
	return &Router{relays: make(map[shared.FormKind]Relay)}
}

// Register adds r for kind. A nil relay is ignored.
func (rt *Router) Register(kind shared.FormKind, r Relay) *Router {
	if r != nil {
		rt.relays[kind] = r
	}
	return rt
}

func (rt *Router) Send(ctx context.Context, sub Submission) error {
	r, ok := rt.relays[sub.Kind]
	if !ok {
		return fmt.Errorf("%s: %w", sub.Kind, ErrNotConfigured)
	}
	return r.Send(ctx, sub)
}

// =====================================================
// HELPERS
// =====================================================

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// checkStatus turns a non-2xx response into a StatusError
func checkStatus(service string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
}

// drain lets the transport reuse the connection
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
