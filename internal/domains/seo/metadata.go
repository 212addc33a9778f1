package seo

import (
	"strings"
	"unicode/utf8"
)

// maxDescriptionLength keeps descriptions inside what search result snippets show
const maxDescriptionLength = 160

// Site is the site-wide information metadata is derived from
type Site struct {
	Name        string
	URL         string
	Description string
}

// Page describes one rendered page
type Page struct {
	Title       string
	Description string
	Path        string // site path, "/digital-museum/bronze-axe"
	ImageURL    string
	Type        string // website, article
	NoIndex     bool
}

type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Canonical   string    `json:"canonical"`
	Robots      string    `json:"robots"`
	OpenGraph   OpenGraph `json:"openGraph"`
}

type OpenGraph struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	SiteName    string `json:"siteName"`
	Type        string `json:"type"`
	Image       string `json:"image,omitempty"`
}

// BuildMetadata builds the head metadata for a page. Empty fields fall back
// to the site defaults.
func BuildMetadata(site Site, page Page) Metadata {
	title := site.Name
	if page.Title != "" && page.Title != site.Name {
		title = page.Title + " | " + site.Name
	}

	description := page.Description
	if description == "" {
		description = site.Description
	}
	description = truncate(strings.Join(strings.Fields(description), " "), maxDescriptionLength)

	path := page.Path
	if path == "" || !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	canonical := strings.TrimRight(site.URL, "/") + path
	if path == "/" {
		canonical = strings.TrimRight(site.URL, "/") + "/"
	}

	ogType := page.Type
	if ogType == "" {
		ogType = "website"
	}

	robots := "index, follow"
	if page.NoIndex {
		robots = "noindex, nofollow"
	}

	return Metadata{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      robots,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    site.Name,
			Type:        ogType,
			Image:       page.ImageURL,
		},
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max-1])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
