package contentstore

import (
	"fmt"
	"strings"
	"time"
)

// =====================================================
// CONTENT STORE CONFIGURATION
// =====================================================

// Perspectives understood by the query API
const (
	PerspectivePublished = "published"
	PerspectiveDrafts    = "previewDrafts"
)

type Config struct {
	ProjectID   string
	Dataset     string
	APIVersion  string // date-based, "2024-01-01"
	Token       string // bearer token, empty for anonymous public reads
	UseCDN      bool
	Perspective string
	BaseURL     string // overrides https://<project>.api(cdn).sanity.io
	Timeout     time.Duration
}

// NewPublicConfig returns the CDN-backed configuration used for published reads
func NewPublicConfig(projectID, dataset, apiVersion string, useCDN bool) *Config {
	return &Config{
		ProjectID:   projectID,
		Dataset:     dataset,
		APIVersion:  apiVersion,
		UseCDN:      useCDN,
		Perspective: PerspectivePublished,
		Timeout:     10 * time.Second,
	}
}

// NewPreviewConfig returns the token-backed configuration used for draft reads.
// Drafts are never served from the CDN.
func NewPreviewConfig(projectID, dataset, apiVersion, token string) *Config {
	return &Config{
		ProjectID:   projectID,
		Dataset:     dataset,
		APIVersion:  apiVersion,
		Token:       token,
		UseCDN:      false,
		Perspective: PerspectiveDrafts,
		Timeout:     10 * time.Second,
	}
}

// GetQueryURL returns the query endpoint for the configured dataset
func (c *Config) GetQueryURL() string {
	version := "v" + strings.TrimPrefix(c.APIVersion, "v")

	if c.BaseURL != "" {
		return fmt.Sprintf("%s/%s/data/query/%s", strings.TrimRight(c.BaseURL, "/"), version, c.Dataset)
	}

	host := "api"
	if c.UseCDN {
		host = "apicdn"
	}
	return fmt.Sprintf("https://%s.%s.sanity.io/%s/data/query/%s", c.ProjectID, host, version, c.Dataset)
}
