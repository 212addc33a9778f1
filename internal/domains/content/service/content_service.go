package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/domains/content/repository"
	"heritage-site/internal/domains/seo"
	"heritage-site/internal/infrastructure/contentstore"
)

// Image sizes requested from the CDN
var (
	listImage   = contentstore.ImageOptions{Width: 800, Format: "webp", Fit: "max"}
	detailImage = contentstore.ImageOptions{Width: 1600, Format: "webp", Fit: "max"}
	logoImage   = contentstore.ImageOptions{Width: 400, Format: "png", Fit: "max"}
	ogImage     = contentstore.ImageOptions{Width: 1200, Height: 630, Format: "jpg", Fit: "crop"}
)

// Options carries the site-wide values the service needs
type Options struct {
	Site          seo.Site
	MeasurementID string
	TagManagerID  string
}

type contentService struct {
	repo     repository.Repository
	images   *contentstore.ImageBuilder
	renderer *Renderer
	opts     Options
	now      func() time.Time
}

func NewContentService(repo repository.Repository, images *contentstore.ImageBuilder, opts Options) ServiceInterface {
	return &contentService{
		repo:     repo,
		images:   images,
		renderer: NewRenderer(),
		opts:     opts,
		now:      time.Now,
	}
}

// ========================================
// SITE
// ========================================

func (s *contentService) GetSettings(ctx context.Context) (*SettingsPage, error) {
	settings, err := s.repo.GetSiteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}

	site := s.opts.Site
	if settings != nil {
		s.resolveImage(settings.Logo, logoImage)
		s.resolveImage(settings.LogoDark, logoImage)
		if settings.Title != "" {
			site.Name = settings.Title
		}
		if settings.Description != "" {
			site.Description = settings.Description
		}
	}

	preview := contentstore.IsPreview(ctx)
	return &SettingsPage{
		Settings:  settings,
		Analytics: seo.TagManager(s.opts.MeasurementID, s.opts.TagManagerID, preview),
		SEO:       seo.BuildMetadata(site, seo.Page{Path: "/", NoIndex: preview}),
	}, nil
}

func (s *contentService) ListPartners(ctx context.Context, partnershipType string) ([]model.Partner, error) {
	partners, err := s.repo.ListPartnersByType(ctx, strings.TrimSpace(partnershipType))
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	for i := range partners {
		s.resolveImage(partners[i].Logo, logoImage)
	}
	return partners, nil
}

func (s *contentService) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	for i := range members {
		s.resolveImage(members[i].Image, listImage)
	}
	return members, nil
}

// ========================================
// DIGITAL MUSEUM
// ========================================

// ListArtefacts: category wins over featured when both are set
func (s *contentService) ListArtefacts(ctx context.Context, filter model.ArtefactFilter) ([]model.Artefact, error) {
	var (
		artefacts []model.Artefact
		err       error
	)
	switch {
	case filter.Category != "":
		artefacts, err = s.repo.ListArtefactsByCategory(ctx, filter.Category)
	case filter.Featured:
		artefacts, err = s.repo.ListFeaturedArtefacts(ctx)
	default:
		artefacts, err = s.repo.ListArtefacts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list artefacts: %w", err)
	}

	// Documents without a title cannot be rendered
	out := make([]model.Artefact, 0, len(artefacts))
	for i := range artefacts {
		if !artefacts[i].Displayable() {
			continue
		}
		s.resolveImages(artefacts[i].Images, listImage)
		out = append(out, artefacts[i])
	}
	return out, nil
}

func (s *contentService) GetArtefact(ctx context.Context, slug string) (*DetailPage[model.Artefact], error) {
	a, err := s.repo.GetArtefactBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get artefact %q: %w", slug, err)
	}
	if a == nil || !a.Displayable() {
		return nil, model.ErrNotFound
	}

	s.resolveImages(a.Images, detailImage)
	for i := range a.RelatedArtefacts {
		s.resolveImages(a.RelatedArtefacts[i].Images, listImage)
	}

	page := seo.Page{
		Title:       a.Title,
		Description: a.Description,
		Path:        "/digital-museum/" + url.PathEscape(a.Slug.Current),
		ImageURL:    s.ogImageURL(a.MainImage()),
		Type:        "article",
	}
	return detailOf(*a, s.detailMeta(ctx, page)), nil
}

// ========================================
// EDITORIAL
// ========================================

// ListNewsPosts returns every post when limit <= 0
func (s *contentService) ListNewsPosts(ctx context.Context, limit int) ([]model.NewsPost, error) {
	var (
		posts []model.NewsPost
		err   error
	)
	if limit > 0 {
		posts, err = s.repo.ListLatestNewsPosts(ctx, limit)
	} else {
		posts, err = s.repo.ListNewsPosts(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list news posts: %w", err)
	}
	for i := range posts {
		s.resolveImage(posts[i].MainImage, listImage)
		posts[i].Body = ""
	}
	return posts, nil
}

func (s *contentService) GetNewsPost(ctx context.Context, slug string) (*DetailPage[model.NewsPost], error) {
	p, err := s.repo.GetNewsPostBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get news post %q: %w", slug, err)
	}
	if p == nil {
		return nil, model.ErrNotFound
	}

	s.resolveImage(p.MainImage, detailImage)
	p.BodyHTML = s.renderer.Render(p.Body)

	page := seo.Page{
		Title:       p.Title,
		Description: p.Excerpt,
		Path:        "/news/" + url.PathEscape(p.Slug.Current),
		ImageURL:    s.ogImageURL(p.MainImage),
		Type:        "article",
	}
	return detailOf(*p, s.detailMeta(ctx, page)), nil
}

func (s *contentService) ListEvents(ctx context.Context, upcomingOnly bool) ([]model.Event, error) {
	var (
		events []model.Event
		err    error
	)
	if upcomingOnly {
		events, err = s.repo.ListUpcomingEvents(ctx, s.now())
	} else {
		events, err = s.repo.ListEvents(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	for i := range events {
		s.resolveImage(events[i].Image, listImage)
		events[i].Body = ""
	}
	return events, nil
}

func (s *contentService) GetEvent(ctx context.Context, slug string) (*DetailPage[model.Event], error) {
	e, err := s.repo.GetEventBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get event %q: %w", slug, err)
	}
	if e == nil {
		return nil, model.ErrNotFound
	}

	s.resolveImage(e.Image, detailImage)
	e.BodyHTML = s.renderer.Render(e.Body)

	page := seo.Page{
		Title:       e.Title,
		Description: e.Description,
		Path:        "/events/" + url.PathEscape(e.Slug.Current),
		ImageURL:    s.ogImageURL(e.Image),
	}
	return detailOf(*e, s.detailMeta(ctx, page)), nil
}

// ListTimeline returns model.ErrInvalidCategory for an unknown category
func (s *contentService) ListTimeline(ctx context.Context, category string) ([]model.TimelineEntry, error) {
	var (
		entries []model.TimelineEntry
		err     error
	)
	if category == "" {
		entries, err = s.repo.ListTimelineEntries(ctx)
	} else {
		c := model.TimelineCategory(category)
		if !c.IsValid() {
			return nil, model.ErrInvalidCategory
		}
		entries, err = s.repo.ListTimelineEntriesByCategory(ctx, c)
	}
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	for i := range entries {
		s.resolveImage(entries[i].Image, listImage)
		entries[i].BodyHTML = s.renderer.Render(entries[i].Body)
		entries[i].Body = ""
	}
	return entries, nil
}

func (s *contentService) ListResearch(ctx context.Context) ([]model.ResearchPublication, error) {
	pubs, err := s.repo.ListResearchPublications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list research publications: %w", err)
	}
	for i := range pubs {
		s.resolveImage(pubs[i].CoverImage, listImage)
	}
	return pubs, nil
}

func (s *contentService) GetResearch(ctx context.Context, slug string) (*DetailPage[model.ResearchPublication], error) {
	p, err := s.repo.GetResearchPublicationBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get research publication %q: %w", slug, err)
	}
	if p == nil {
		return nil, model.ErrNotFound
	}

	s.resolveImage(p.CoverImage, detailImage)
	p.AbstractHTML = s.renderer.Render(p.Abstract)

	page := seo.Page{
		Title:       p.Title,
		Description: p.Abstract,
		Path:        "/research/" + url.PathEscape(p.Slug.Current),
		ImageURL:    s.ogImageURL(p.CoverImage),
		Type:        "article",
	}
	return detailOf(*p, s.detailMeta(ctx, page)), nil
}

// ========================================
// SEARCH
// ========================================

func (s *contentService) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, model.ErrEmptyQuery
	}
	results, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	return results, nil
}

// ========================================
// HELPERS
// ========================================

func (s *contentService) resolveImage(img *model.Image, opts contentstore.ImageOptions) {
	if img == nil {
		return
	}
	if u, ok := s.images.URL(img.AssetRef(), opts); ok {
		img.URL = u
	}
}

func (s *contentService) resolveImages(imgs []model.Image, opts contentstore.ImageOptions) {
	for i := range imgs {
		s.resolveImage(&imgs[i], opts)
	}
}

func (s *contentService) ogImageURL(img *model.Image) string {
	u, _ := s.images.URL(img.AssetRef(), ogImage)
	return u
}

func detailOf[T any](doc T, meta seo.Metadata) *DetailPage[T] {
	return &DetailPage[T]{Document: doc, SEO: meta}
}

func (s *contentService) detailMeta(ctx context.Context, page seo.Page) seo.Metadata {
	page.NoIndex = contentstore.IsPreview(ctx)
	return seo.BuildMetadata(s.opts.Site, page)
}
