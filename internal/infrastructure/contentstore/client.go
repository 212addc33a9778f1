package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// MaxGETURLLength is the longest query URL sent as a GET. Longer queries are
// POSTed as JSON, which the CDN does not cache.
const MaxGETURLLength = 8 * 1024

// =====================================================
// QUERY CLIENT
// =====================================================

// Querier runs a read-only query against the content store and decodes the
// "result" member of the response into dest.
//
// A query that matches nothing is not an error: a null result leaves a
// pointer dest nil and a slice dest nil.
type Querier interface {
	Query(ctx context.Context, query string, params map[string]interface{}, dest interface{}) error
}

// QueryError is returned when the API rejects a query (syntax errors, bad
// params, auth failures).
type QueryError struct {
	StatusCode  int
	Description string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("content query failed (status %d): %s", e.StatusCode, e.Description)
}

// ErrNoProject is returned by NewClient when the project id is missing
var ErrNoProject = errors.New("content store project id is required")

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a content store client
func NewClient(config *Config) (*Client, error) {
	if config.ProjectID == "" && config.BaseURL == "" {
		return nil, ErrNoProject
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

func (c *Client) Query(ctx context.Context, query string, params map[string]interface{}, dest interface{}) error {
	// Step 1: Build request
	httpReq, err := c.newQueryRequest(ctx, query, params)
	if err != nil {
		return err
	}

	// Step 2: Call API
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call content API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Step 3: Map API errors
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		description := http.StatusText(resp.StatusCode)
		if json.Unmarshal(bodyBytes, &apiErr) == nil {
			if apiErr.Error.Description != "" {
				description = apiErr.Error.Description
			} else if apiErr.Message != "" {
				description = apiErr.Message
			}
		}
		return &QueryError{StatusCode: resp.StatusCode, Description: description}
	}

	// Step 4: Decode result
	var respData queryResponse
	if err := json.Unmarshal(bodyBytes, &respData); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(respData.Result) == 0 || dest == nil {
		return nil
	}
	if err := json.Unmarshal(respData.Result, dest); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}

	return nil
}

type queryBody struct {
	Query  string                 `json:"query"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// newQueryRequest encodes params as $name=<json value> on a GET, falling back
// to a POST body once the URL grows past MaxGETURLLength.
func (c *Client) newQueryRequest(ctx context.Context, query string, params map[string]interface{}) (*http.Request, error) {
	base := url.Values{}
	if c.config.Perspective != "" {
		base.Set("perspective", c.config.Perspective)
	}

	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	for k, v := range base {
		values[k] = v
	}

	var (
		httpReq *http.Request
		err     error
	)
	endpoint := c.config.GetQueryURL() + "?" + values.Encode()
	if len(endpoint) <= MaxGETURLLength {
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	} else {
		payload, mErr := json.Marshal(queryBody{Query: query, Params: params})
		if mErr != nil {
			return nil, fmt.Errorf("failed to encode query body: %w", mErr)
		}
		endpoint = c.config.GetQueryURL()
		if len(base) > 0 {
			endpoint += "?" + base.Encode()
		}
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err == nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	return httpReq, nil
}

// Ping runs a trivial query to check reachability
func (c *Client) Ping(ctx context.Context) error {
	var now string
	return c.Query(ctx, "now()", nil, &now)
}
