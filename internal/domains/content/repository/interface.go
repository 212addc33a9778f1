package repository

import (
	"context"
	"time"

	"heritage-site/internal/domains/content/model"
)

// =====================================================
// CONTENT REPOSITORY INTERFACE
// =====================================================

// Repository is the read-only data access layer over the content store.
//
// Misses are never errors: single-document reads return (nil, nil) and list
// reads return an empty, non-nil slice. Errors mean the store could not be
// reached or rejected the query.
type Repository interface {
	// ========================================
	// SITE
	// ========================================

	GetSiteSettings(ctx context.Context) (*model.SiteSettings, error)

	// ListPartners returns partners ordered by order asc, name asc
	ListPartners(ctx context.Context) ([]model.Partner, error)
	ListPartnersByType(ctx context.Context, partnershipType string) ([]model.Partner, error)

	// ListTeamMembers returns members ordered by order asc, name asc
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)

	// ========================================
	// DIGITAL MUSEUM
	// ========================================

	ListArtefacts(ctx context.Context) ([]model.Artefact, error)
	ListFeaturedArtefacts(ctx context.Context) ([]model.Artefact, error)
	ListArtefactsByCategory(ctx context.Context, category string) ([]model.Artefact, error)
	GetArtefactBySlug(ctx context.Context, slug string) (*model.Artefact, error)

	// ========================================
	// EDITORIAL
	// ========================================

	// ListNewsPosts returns posts newest first
	ListNewsPosts(ctx context.Context) ([]model.NewsPost, error)
	ListLatestNewsPosts(ctx context.Context, limit int) ([]model.NewsPost, error)
	GetNewsPostBySlug(ctx context.Context, slug string) (*model.NewsPost, error)

	// ListEvents returns events ordered by startDate asc
	ListEvents(ctx context.Context) ([]model.Event, error)
	ListUpcomingEvents(ctx context.Context, now time.Time) ([]model.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*model.Event, error)

	ListTimelineEntries(ctx context.Context) ([]model.TimelineEntry, error)
	ListTimelineEntriesByCategory(ctx context.Context, category model.TimelineCategory) ([]model.TimelineEntry, error)

	ListResearchPublications(ctx context.Context) ([]model.ResearchPublication, error)
	GetResearchPublicationBySlug(ctx context.Context, slug string) (*model.ResearchPublication, error)

	// ========================================
	// SEARCH & SITEMAP
	// ========================================

	// Search prefix-matches term across the searchable types
	Search(ctx context.Context, term string) ([]model.SearchResult, error)

	ListSitemapEntries(ctx context.Context, docType string) ([]model.SitemapEntry, error)
}
