package model

import "time"

// SiteSettings is the singleton document with id SiteSettingsID
type SiteSettings struct {
	Meta
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Logo        *Image       `json:"logo,omitempty"`
	LogoDark    *Image       `json:"logoDark,omitempty"`
	Contact     ContactInfo  `json:"contact"`
	SocialLinks []SocialLink `json:"socialLinks,omitempty"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// =====================================================
// SEARCH & SITEMAP PROJECTIONS
// =====================================================

// SearchResult is the lightweight summary returned by Search
type SearchResult struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	CreatedAt time.Time `json:"_createdAt"`
}

// SitemapEntry is the slug and last-modified time of one document
type SitemapEntry struct {
	Slug      string    `json:"slug"`
	UpdatedAt time.Time `json:"_updatedAt"`
}
