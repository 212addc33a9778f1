package relay

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Mailchimp unsubscribes list members through the Marketing API
type Mailchimp struct {
	baseURL string
	apiKey  string
	listID  string
	http    *http.Client
}

// NewMailchimp derives the API host from serverPrefix, or from the
// datacenter suffix of the key ("...-us21") when the prefix is empty.
// baseURL overrides both.
func NewMailchimp(apiKey, serverPrefix, listID, baseURL string, timeout time.Duration) *Mailchimp {
	if baseURL == "" {
		dc := serverPrefix
		if dc == "" {
			if i := strings.LastIndex(apiKey, "-"); i >= 0 {
				dc = apiKey[i+1:]
			}
		}
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", dc)
	}
	return &Mailchimp{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		listID:  listID,
		http:    newHTTPClient(timeout),
	}
}

func (m *Mailchimp) Name() string { return "mailchimp" }

// SubscriberHash is the member id Mailchimp derives from an address
func SubscriberHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

func (m *Mailchimp) Unsubscribe(ctx context.Context, email string) error {
	endpoint := fmt.Sprintf("%s/3.0/lists/%s/members/%s", m.baseURL, m.listID, SubscriberHash(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint,
		bytes.NewReader([]byte(`{"status":"unsubscribed"}`)))
	if err != nil {
		return fmt.Errorf("build mailchimp request: %w", err)
	}
	req.SetBasicAuth("anystring", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("mailchimp unsubscribe: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return checkStatus(m.Name(), resp)
}
