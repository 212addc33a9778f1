package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/domains/content/query"
	"heritage-site/internal/infrastructure/contentstore"
)

type sanityRepository struct {
	store contentstore.Querier
}

// NewSanityRepository creates a repository over the content store. Pass a
// *contentstore.Clients to get preview routing from the request context.
func NewSanityRepository(store contentstore.Querier) Repository {
	return &sanityRepository{store: store}
}

// fetchOne runs a single-document query; a null result yields (nil, nil)
func fetchOne[T any](ctx context.Context, store contentstore.Querier, q string, params map[string]interface{}, what string) (*T, error) {
	var out *T
	if err := store.Query(ctx, q, params, &out); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", what, err)
	}
	return out, nil
}

// fetchList runs a list query; a null result yields an empty slice
func fetchList[T any](ctx context.Context, store contentstore.Querier, q string, params map[string]interface{}, what string) ([]T, error) {
	var out []T
	if err := store.Query(ctx, q, params, &out); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// =====================================================
// SITE
// =====================================================

func (r *sanityRepository) GetSiteSettings(ctx context.Context) (*model.SiteSettings, error) {
	return fetchOne[model.SiteSettings](ctx, r.store, query.SiteSettings,
		map[string]interface{}{"id": model.SiteSettingsID}, "site settings")
}

func (r *sanityRepository) ListPartners(ctx context.Context) ([]model.Partner, error) {
	return fetchList[model.Partner](ctx, r.store, query.AllPartners, nil, "partners")
}

func (r *sanityRepository) ListPartnersByType(ctx context.Context, partnershipType string) ([]model.Partner, error) {
	if partnershipType == "" {
		return r.ListPartners(ctx)
	}
	return fetchList[model.Partner](ctx, r.store, query.PartnersByType,
		map[string]interface{}{"type": partnershipType}, "partners")
}

func (r *sanityRepository) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	return fetchList[model.TeamMember](ctx, r.store, query.AllTeamMembers, nil, "team members")
}

// =====================================================
// DIGITAL MUSEUM
// =====================================================

func (r *sanityRepository) ListArtefacts(ctx context.Context) ([]model.Artefact, error) {
	return fetchList[model.Artefact](ctx, r.store, query.AllArtefacts, nil, "artefacts")
}

func (r *sanityRepository) ListFeaturedArtefacts(ctx context.Context) ([]model.Artefact, error) {
	return fetchList[model.Artefact](ctx, r.store, query.FeaturedArtefacts, nil, "featured artefacts")
}

func (r *sanityRepository) ListArtefactsByCategory(ctx context.Context, category string) ([]model.Artefact, error) {
	if category == "" {
		return r.ListArtefacts(ctx)
	}
	return fetchList[model.Artefact](ctx, r.store, query.ArtefactsByCategory,
		map[string]interface{}{"category": category}, "artefacts")
}

func (r *sanityRepository) GetArtefactBySlug(ctx context.Context, slug string) (*model.Artefact, error) {
	if slug == "" {
		return nil, nil
	}
	return fetchOne[model.Artefact](ctx, r.store, query.ArtefactBySlug,
		map[string]interface{}{"slug": slug}, "artefact")
}

// =====================================================
// EDITORIAL
// =====================================================

func (r *sanityRepository) ListNewsPosts(ctx context.Context) ([]model.NewsPost, error) {
	return fetchList[model.NewsPost](ctx, r.store, query.AllNewsPosts, nil, "news posts")
}

func (r *sanityRepository) ListLatestNewsPosts(ctx context.Context, limit int) ([]model.NewsPost, error) {
	if limit <= 0 {
		return []model.NewsPost{}, nil
	}
	return fetchList[model.NewsPost](ctx, r.store, query.LatestNewsPosts,
		map[string]interface{}{"limit": limit}, "news posts")
}

func (r *sanityRepository) GetNewsPostBySlug(ctx context.Context, slug string) (*model.NewsPost, error) {
	if slug == "" {
		return nil, nil
	}
	return fetchOne[model.NewsPost](ctx, r.store, query.NewsPostBySlug,
		map[string]interface{}{"slug": slug}, "news post")
}

func (r *sanityRepository) ListEvents(ctx context.Context) ([]model.Event, error) {
	return fetchList[model.Event](ctx, r.store, query.AllEvents, nil, "events")
}

func (r *sanityRepository) ListUpcomingEvents(ctx context.Context, now time.Time) ([]model.Event, error) {
	return fetchList[model.Event](ctx, r.store, query.UpcomingEvents,
		map[string]interface{}{"now": now.UTC().Format("2006-01-02")}, "upcoming events")
}

func (r *sanityRepository) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if slug == "" {
		return nil, nil
	}
	return fetchOne[model.Event](ctx, r.store, query.EventBySlug,
		map[string]interface{}{"slug": slug}, "event")
}

func (r *sanityRepository) ListTimelineEntries(ctx context.Context) ([]model.TimelineEntry, error) {
	return fetchList[model.TimelineEntry](ctx, r.store, query.AllTimelineEntries, nil, "timeline entries")
}

func (r *sanityRepository) ListTimelineEntriesByCategory(ctx context.Context, category model.TimelineCategory) ([]model.TimelineEntry, error) {
	if category == "" {
		return r.ListTimelineEntries(ctx)
	}
	return fetchList[model.TimelineEntry](ctx, r.store, query.TimelineEntriesByCategory,
		map[string]interface{}{"category": string(category)}, "timeline entries")
}

func (r *sanityRepository) ListResearchPublications(ctx context.Context) ([]model.ResearchPublication, error) {
	return fetchList[model.ResearchPublication](ctx, r.store, query.AllResearchPublications, nil, "research publications")
}

func (r *sanityRepository) GetResearchPublicationBySlug(ctx context.Context, slug string) (*model.ResearchPublication, error) {
	if slug == "" {
		return nil, nil
	}
	return fetchOne[model.ResearchPublication](ctx, r.store, query.ResearchPublicationBySlug,
		map[string]interface{}{"slug": slug}, "research publication")
}

// =====================================================
// SEARCH & SITEMAP
// =====================================================

func (r *sanityRepository) Search(ctx context.Context, term string) ([]model.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.SearchResult{}, nil
	}
	return fetchList[model.SearchResult](ctx, r.store, query.Search, map[string]interface{}{
		"types": query.SearchTypes,
		"q":     term + "*",
	}, "search results")
}

func (r *sanityRepository) ListSitemapEntries(ctx context.Context, docType string) ([]model.SitemapEntry, error) {
	return fetchList[model.SitemapEntry](ctx, r.store, query.SitemapEntries,
		map[string]interface{}{"type": docType}, docType+" sitemap entries")
}
