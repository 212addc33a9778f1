package service

import (
	"context"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/domains/seo"
)

// ServiceInterface shapes content for the rendering layer: image references
// become CDN URLs, markdown bodies become HTML, and detail reads carry SEO
// metadata. Detail reads return model.ErrNotFound for a missing slug.
type ServiceInterface interface {
	GetSettings(ctx context.Context) (*SettingsPage, error)
	ListPartners(ctx context.Context, partnershipType string) ([]model.Partner, error)
	ListTeamMembers(ctx context.Context) ([]model.TeamMember, error)

	ListArtefacts(ctx context.Context, filter model.ArtefactFilter) ([]model.Artefact, error)
	GetArtefact(ctx context.Context, slug string) (*DetailPage[model.Artefact], error)

	ListNewsPosts(ctx context.Context, limit int) ([]model.NewsPost, error)
	GetNewsPost(ctx context.Context, slug string) (*DetailPage[model.NewsPost], error)

	ListEvents(ctx context.Context, upcomingOnly bool) ([]model.Event, error)
	GetEvent(ctx context.Context, slug string) (*DetailPage[model.Event], error)

	ListTimeline(ctx context.Context, category string) ([]model.TimelineEntry, error)

	ListResearch(ctx context.Context) ([]model.ResearchPublication, error)
	GetResearch(ctx context.Context, slug string) (*DetailPage[model.ResearchPublication], error)

	Search(ctx context.Context, q string) ([]model.SearchResult, error)
}

// DetailPage is one document plus the head metadata for its page
type DetailPage[T any] struct {
	Document T            `json:"document"`
	SEO      seo.Metadata `json:"seo"`
}

// SettingsPage is the site-wide data every page layout needs
type SettingsPage struct {
	Settings  *model.SiteSettings `json:"settings"`
	Analytics seo.Analytics       `json:"analytics"`
	SEO       seo.Metadata        `json:"seo"`
}
