package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Brevo removes contacts through the Brevo v3 API. With a list id the
// contact is only taken off that list, otherwise it is deleted.
type Brevo struct {
	baseURL string
	apiKey  string
	listID  string
	http    *http.Client
}

func NewBrevo(apiKey, listID, baseURL string, timeout time.Duration) *Brevo {
	if baseURL == "" {
		baseURL = "https://api.brevo.com"
	}
	return &Brevo{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		listID:  listID,
		http:    newHTTPClient(timeout),
	}
}

func (b *Brevo) Name() string { return "brevo" }

type brevoContact struct {
	ID int64 `json:"id"`
}

// Unsubscribe looks the contact up first because removal is by id
func (b *Brevo) Unsubscribe(ctx context.Context, email string) error {
	contact, err := b.lookup(ctx, email)
	if err != nil {
		return err
	}
	if contact == nil {
		return nil
	}

	if b.listID != "" {
		body, _ := json.Marshal(map[string][]int64{"ids": {contact.ID}})
		return b.do(ctx, http.MethodPost,
			fmt.Sprintf("/v3/contacts/lists/%s/contacts/remove", url.PathEscape(b.listID)), body)
	}
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/v3/contacts/%d", contact.ID), nil)
}

func (b *Brevo) lookup(ctx context.Context, email string) (*brevoContact, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/v3/contacts/"+url.PathEscape(strings.TrimSpace(email)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo lookup: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := checkStatus(b.Name(), resp); err != nil {
		return nil, err
	}

	var c brevoContact
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode brevo contact: %w", err)
	}
	return &c, nil
}

func (b *Brevo) do(ctx context.Context, method, path string, body []byte) error {
	req, err := b.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("brevo %s %s: %w", method, path, err)
	}
	defer drain(resp)

	return checkStatus(b.Name(), resp)
}

func (b *Brevo) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build brevo request: %w", err)
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
