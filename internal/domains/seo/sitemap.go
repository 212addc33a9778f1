package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"heritage-site/internal/domains/content/model"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticPaths are always present in the sitemap
var StaticPaths = []string{
	"",
	"/about",
	"/contact",
	"/digital-museum",
	"/timeline",
	"/team",
	"/news",
	"/events",
	"/research",
	"/partners",
}

// dynamicRoutes maps each document type with detail pages to its route prefix
var dynamicRoutes = []struct {
	docType string
	prefix  string
}{
	{model.TypeArtefact, "/digital-museum/"},
	{model.TypePost, "/news/"},
	{model.TypeEvent, "/events/"},
	{model.TypeResearchPublication, "/research/"},
}

// EntrySource lists the slugs of one document type
type EntrySource interface {
	ListSitemapEntries(ctx context.Context, docType string) ([]model.SitemapEntry, error)
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type SitemapBuilder struct {
	source  EntrySource
	siteURL string
	now     func() time.Time
}

func NewSitemapBuilder(source EntrySource, siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		source:  source,
		siteURL: strings.TrimRight(siteURL, "/"),
		now:     time.Now,
	}
}

// Build always returns a sitemap. If any dynamic fetch fails the dynamic
// part is dropped entirely and the error is returned alongside the static set.
func (b *SitemapBuilder) Build(ctx context.Context) (*URLSet, error) {
	set := &URLSet{Xmlns: sitemapNS, URLs: b.staticURLs()}

	dynamic, err := b.dynamicURLs(ctx)
	if err != nil {
		return set, err
	}
	set.URLs = append(set.URLs, dynamic...)
	return set, nil
}

func (b *SitemapBuilder) staticURLs() []URL {
	today := b.now().UTC().Format("2006-01-02")
	urls := make([]URL, 0, len(StaticPaths))
	for _, p := range StaticPaths {
		u := URL{Loc: b.siteURL + p, LastMod: today, ChangeFreq: "weekly", Priority: "0.8"}
		if p == "" {
			u.ChangeFreq, u.Priority = "daily", "1.0"
		}
		urls = append(urls, u)
	}
	return urls
}

func (b *SitemapBuilder) dynamicURLs(ctx context.Context) ([]URL, error) {
	var urls []URL
	for _, route := range dynamicRoutes {
		entries, err := b.source.ListSitemapEntries(ctx, route.docType)
		if err != nil {
			return nil, fmt.Errorf("sitemap entries for %s: %w", route.docType, err)
		}
		for _, e := range entries {
			if e.Slug == "" {
				continue
			}
			u := URL{
				Loc:        b.siteURL + route.prefix + url.PathEscape(e.Slug),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			}
			if !e.UpdatedAt.IsZero() {
				u.LastMod = e.UpdatedAt.UTC().Format("2006-01-02")
			}
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// Marshal renders the set with the XML declaration
func (s *URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
