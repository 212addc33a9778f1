package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FormRelay posts submissions to a hosted form endpoint, {base}/f/{formID}
type FormRelay struct {
	endpoint string
	http     *http.Client
}

func NewFormRelay(baseURL, formID string, timeout time.Duration) *FormRelay {
	return &FormRelay{
		endpoint: fmt.Sprintf("%s/f/%s", baseURL, url.PathEscape(formID)),
		http:     newHTTPClient(timeout),
	}
}

func (r *FormRelay) Send(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub.Fields)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay %s: %w", sub.Kind, err)
	}
	defer drain(resp)

	return checkStatus("form relay", resp)
}
