package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"heritage-site/internal/config"
	contentHandler "heritage-site/internal/domains/content/handler"
	contentRepo "heritage-site/internal/domains/content/repository"
	contentService "heritage-site/internal/domains/content/service"
	formsHandler "heritage-site/internal/domains/forms/handler"
	formsService "heritage-site/internal/domains/forms/service"
	previewHandler "heritage-site/internal/domains/preview/handler"
	revalidateHandler "heritage-site/internal/domains/revalidate/handler"
	revalidateService "heritage-site/internal/domains/revalidate/service"
	"heritage-site/internal/domains/seo"
	infraCache "heritage-site/internal/infrastructure/cache"
	"heritage-site/internal/infrastructure/contentstore"
	"heritage-site/internal/infrastructure/queue"
	"heritage-site/internal/infrastructure/relay"
	"heritage-site/internal/shared"
	"heritage-site/internal/shared/middleware"
	"heritage-site/pkg/cache"
	"heritage-site/pkg/jwt"
	"heritage-site/pkg/logger"
)

// Container holds every wired dependency of the API process
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config        *config.Config
	RedisClient   *infraCache.RedisClient
	Cache         cache.Cache // nil when Redis is unreachable at startup
	PublicClient  *contentstore.Client
	PreviewClient *contentstore.Client
	Store         *contentstore.Clients
	Images        *contentstore.ImageBuilder
	Tokens        *jwt.Manager
	RelayRouter   *relay.Router
	Providers     []relay.MailingListProvider
	Dispatcher    queue.Dispatcher
	AsynqClient   *asynq.Client
	RateLimiter   *middleware.RateLimiter

	// ========================================
	// REPOSITORY
	// ========================================
	ContentRepo contentRepo.Repository

	// ========================================
	// SERVICE
	// ========================================
	ContentService    contentService.ServiceInterface
	FormsService      formsService.ServiceInterface
	RevalidateService revalidateService.ServiceInterface
	Sitemap           *seo.SitemapBuilder

	// ========================================
	// HANDLER
	// ========================================
	ContentHandler    *contentHandler.ContentHandler
	FormsHandler      *formsHandler.FormsHandler
	PreviewHandler    *previewHandler.PreviewHandler
	RevalidateHandler *revalidateHandler.RevalidateHandler
	SEOHandler        *seo.Handler

	stopSweep chan struct{}
}

// NewContainer loads configuration and wires the dependency graph bottom-up
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: INITIALIZE CONTENT STORE
	// ========================================
	if err := c.initContentStore(); err != nil {
		return nil, fmt.Errorf("failed to init content store: %w", err)
	}
	logger.Info("Content store clients ready", map[string]interface{}{
		"project": cfg.ContentStore.ProjectID,
		"dataset": cfg.ContentStore.Dataset,
		"cdn":     cfg.ContentStore.UseCDN,
	})

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.initCache()

	c.Tokens = jwt.NewManager(cfg.Preview.Secret, cfg.Preview.CookieTTL)

	// ========================================
	// STEP 4: INITIALIZE RELAYS
	// ========================================
	c.RelayRouter = NewRelayRouter(cfg)
	c.Providers = NewMailingListProviders(cfg)
	c.initDispatcher()

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	c.initHandlers()

	c.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	c.stopSweep = make(chan struct{})
	go c.RateLimiter.Run(c.stopSweep)

	logger.Info("DI container initialized", map[string]interface{}{
		"env":        cfg.App.Environment,
		"relay_mode": cfg.Forms.RelayMode,
		"cache":      c.Cache != nil,
	})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initContentStore() error {
	cs := c.Config.ContentStore

	publicCfg := contentstore.NewPublicConfig(cs.ProjectID, cs.Dataset, cs.APIVersion, cs.UseCDN)
	publicCfg.BaseURL = cs.BaseURL
	publicCfg.Timeout = cs.Timeout
	public, err := contentstore.NewClient(publicCfg)
	if err != nil {
		return err
	}
	c.PublicClient = public

	var preview contentstore.Querier = public
	if cs.Token != "" {
		previewCfg := contentstore.NewPreviewConfig(cs.ProjectID, cs.Dataset, cs.APIVersion, cs.Token)
		previewCfg.BaseURL = cs.BaseURL
		previewCfg.Timeout = cs.Timeout
		pc, err := contentstore.NewClient(previewCfg)
		if err != nil {
			return err
		}
		c.PreviewClient = pc
		preview = pc
	} else {
		logger.Warn("CONTENT_API_TOKEN not set, preview reads fall back to published content", nil)
	}

	c.Store = contentstore.NewClients(public, preview)
	c.Images = contentstore.NewImageBuilder(cs.ProjectID, cs.Dataset)
	return nil
}

// initCache connects Redis. A failed connection is not fatal: the page cache
// and revalidation become no-ops and every read goes to the content store.
func (c *Container) initCache() {
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		logger.Warn("Redis unavailable, page cache disabled", map[string]interface{}{"error": err.Error()})
		_ = rc.Close()
		return
	}
	c.RedisClient = rc
	c.Cache = infraCache.NewRedisCache(rc)
}

func (c *Container) initDispatcher() {
	cfg := c.Config
	verbose := !cfg.App.IsProduction()

	if cfg.Forms.RelayMode == "queue" {
		c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.Dispatcher = queue.NewAsynqDispatcher(c.AsynqClient, cfg.Forms.RelayTimeout, verbose)
		return
	}
	c.Dispatcher = queue.NewInlineDispatcher(c.RelayRouter, cfg.Forms.RelayTimeout, verbose)
}

func (c *Container) initRepositories() {
	c.ContentRepo = contentRepo.NewSanityRepository(c.Store)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.ContentService = contentService.NewContentService(c.ContentRepo, c.Images, contentService.Options{
		Site: seo.Site{
			Name: cfg.App.Name,
			URL:  cfg.App.SiteURL,
		},
		MeasurementID: cfg.Analytics.MeasurementID,
		TagManagerID:  cfg.Analytics.TagManagerID,
	})
	c.FormsService = formsService.NewFormsService(c.Dispatcher, c.Providers, !cfg.App.IsProduction())
	c.RevalidateService = revalidateService.NewRevalidateService(c.Cache)
	c.Sitemap = seo.NewSitemapBuilder(c.ContentRepo, cfg.App.SiteURL)
}

func (c *Container) initHandlers() {
	cfg := c.Config

	c.ContentHandler = contentHandler.NewContentHandler(c.ContentService)
	c.FormsHandler = formsHandler.NewFormsHandler(c.FormsService, cfg.App.Name)
	c.PreviewHandler = previewHandler.NewPreviewHandler(cfg.Preview.Secret, c.Tokens, cfg.App.IsProduction())
	c.RevalidateHandler = revalidateHandler.NewRevalidateHandler(c.RevalidateService, cfg.Revalidate.Secret)
	c.SEOHandler = seo.NewHandler(c.Sitemap, cfg.App.SiteURL)
}

// ========================================
// SHARED BUILDERS
// ========================================

// NewRelayRouter registers one relay per form kind. cmd/worker builds the
// same router so queued and inline deliveries behave identically.
func NewRelayRouter(cfg *config.Config) *relay.Router {
	router := relay.NewRouter()

	switch {
	case cfg.Forms.ContactFormID != "":
		router.Register(shared.FormContact, relay.NewFormRelay(cfg.Forms.RelayBaseURL, cfg.Forms.ContactFormID, cfg.Forms.RelayTimeout))
	case cfg.SMTP.Enabled():
		router.Register(shared.FormContact, relay.NewSMTPRelay(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.To))
	}

	if cfg.Forms.NewsletterFormID != "" {
		router.Register(shared.FormNewsletter, relay.NewFormRelay(cfg.Forms.RelayBaseURL, cfg.Forms.NewsletterFormID, cfg.Forms.RelayTimeout))
	}
	return router
}

// NewMailingListProviders returns every configured list provider in call order
func NewMailingListProviders(cfg *config.Config) []relay.MailingListProvider {
	var providers []relay.MailingListProvider
	if cfg.Mailchimp.Enabled() {
		providers = append(providers, relay.NewMailchimp(cfg.Mailchimp.APIKey, cfg.Mailchimp.ServerPrefix, cfg.Mailchimp.ListID, "", cfg.Forms.RelayTimeout))
	}
	if cfg.Brevo.Enabled() {
		providers = append(providers, relay.NewBrevo(cfg.Brevo.APIKey, cfg.Brevo.ListID, cfg.Brevo.BaseURL, cfg.Forms.RelayTimeout))
	}
	return providers
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases connections and waits for in-flight inline relays.
// Called from the graceful shutdown path.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.stopSweep != nil {
		close(c.stopSweep)
	}

	if d, ok := c.Dispatcher.(*queue.InlineDispatcher); ok {
		d.Wait()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		} else {
			logger.Info("Redis connections closed", nil)
		}
	}

	logger.Info("Container cleanup completed", nil)
}
