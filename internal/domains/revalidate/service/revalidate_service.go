package service

import (
	"context"
	"strings"

	"heritage-site/internal/domains/content/model"
	"heritage-site/internal/shared/pagecache"
	"heritage-site/pkg/cache"
	"heritage-site/pkg/logger"
)

// targetsByType lists what each document type invalidates when it changes.
// Types not listed invalidate the whole layout.
var targetsByType = map[string][]pagecache.Target{
	model.TypeArtefact: {
		pagecache.Page("/digital-museum"),
		pagecache.Page("/digital-museum/[slug]"),
		pagecache.Page("/"),
	},
	model.TypePost: {
		pagecache.Page("/news"),
		pagecache.Page("/news/[slug]"),
		pagecache.Page("/"),
	},
	model.TypeEvent: {
		pagecache.Page("/events"),
		pagecache.Page("/events/[slug]"),
	},
	model.TypeTimelineEntry: {
		pagecache.Page("/timeline"),
	},
	model.TypeTeamMember: {
		pagecache.Page("/team"),
		pagecache.Page("/about"),
	},
	model.TypePartner: {
		pagecache.Page("/about"),
		pagecache.Page("/partners"),
		pagecache.Page("/"),
	},
	model.TypeResearchPublication: {
		pagecache.Page("/research"),
		pagecache.Page("/research/[slug]"),
	},
}

// Result describes one revalidation
type Result struct {
	Type    string             `json:"type,omitempty"`
	Path    string             `json:"path,omitempty"`
	Targets []pagecache.Target `json:"targets"`
}

type ServiceInterface interface {
	// RevalidateType invalidates the fixed target list of a document type
	RevalidateType(ctx context.Context, docType string) (*Result, error)
	// RevalidatePath invalidates one site path, or everything under it for a layout
	RevalidatePath(ctx context.Context, path string, kind pagecache.Kind) (*Result, error)
}

type revalidateService struct {
	cache cache.Cache
}

// NewRevalidateService: a nil cache makes every revalidation a no-op success
func NewRevalidateService(c cache.Cache) ServiceInterface {
	return &revalidateService{cache: c}
}

// TargetsFor returns the invalidation targets for a document type
func TargetsFor(docType string) []pagecache.Target {
	if targets, ok := targetsByType[docType]; ok {
		return targets
	}
	return []pagecache.Target{pagecache.Layout("/")}
}

func (s *revalidateService) RevalidateType(ctx context.Context, docType string) (*Result, error) {
	targets := TargetsFor(docType)
	if err := s.invalidate(ctx, targets); err != nil {
		return nil, err
	}
	return &Result{Type: docType, Targets: targets}, nil
}

func (s *revalidateService) RevalidatePath(ctx context.Context, path string, kind pagecache.Kind) (*Result, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target := pagecache.Page(path)
	if kind == pagecache.KindLayout {
		target = pagecache.Layout(path)
	}

	targets := []pagecache.Target{target}
	if err := s.invalidate(ctx, targets); err != nil {
		return nil, err
	}
	return &Result{Path: path, Targets: targets}, nil
}

func (s *revalidateService) invalidate(ctx context.Context, targets []pagecache.Target) error {
	if s.cache == nil {
		return nil
	}
	if err := pagecache.Invalidate(ctx, s.cache, targets); err != nil {
		return err
	}

	logger.Info("cache revalidated", map[string]interface{}{
		"targets": targets,
	})
	return nil
}
