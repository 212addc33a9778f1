package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"heritage-site/pkg/logger"
)

// Config is the full application configuration, populated from the environment
type Config struct {
	App          AppConfig
	ContentStore ContentStoreConfig
	Preview      PreviewConfig
	Revalidate   RevalidateConfig
	Forms        FormsConfig
	Mailchimp    MailchimpConfig
	Brevo        BrevoConfig
	SMTP         SMTPConfig
	Redis        RedisConfig
	Analytics    AnalyticsConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	SiteURL     string // public site origin, e.g. https://example.org
}

// IsProduction reports whether the app runs with APP_ENV=production
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ContentStoreConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string // date-based, e.g. 2024-01-01
	Token      string // read token, required for preview reads
	UseCDN     bool
	BaseURL    string // overrides the hosted API origin (local proxies, tests)
	Timeout    time.Duration
}

type PreviewConfig struct {
	Secret    string
	CookieTTL time.Duration
}

type RevalidateConfig struct {
	Secret string
}

// =====================================================
// FORM RELAY CONFIGURATION
// =====================================================

type FormsConfig struct {
	RelayBaseURL     string // e.g. https://formspree.io
	ContactFormID    string
	NewsletterFormID string
	RelayMode        string // inline, queue
	RelayTimeout     time.Duration
}

type MailchimpConfig struct {
	APIKey       string
	ServerPrefix string // us21, derived from the key suffix when empty
	ListID       string
}

// Enabled reports whether every Mailchimp setting needed for list calls is present
func (m MailchimpConfig) Enabled() bool {
	return m.APIKey != "" && m.ListID != ""
}

type BrevoConfig struct {
	APIKey  string
	ListID  string
	BaseURL string
}

func (b BrevoConfig) Enabled() bool {
	return b.APIKey != ""
}

type SMTPConfig struct {
	Host string
	Port string
	From string
	To   string // staff inbox receiving contact messages
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.To != ""
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type AnalyticsConfig struct {
	MeasurementID string // GA4 measurement id, G-XXXX
	TagManagerID  string // GTM container id, GTM-XXXX
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Heritage Project"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SiteURL:     strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		},
		ContentStore: ContentStoreConfig{
			ProjectID:  getEnv("CONTENT_PROJECT_ID", ""),
			Dataset:    getEnv("CONTENT_DATASET", "production"),
			APIVersion: getEnv("CONTENT_API_VERSION", "2024-01-01"),
			Token:      getEnv("CONTENT_API_TOKEN", ""),
			UseCDN:     getEnvBool("CONTENT_USE_CDN", getEnv("APP_ENV", "development") == "production"),
			BaseURL:    getEnv("CONTENT_API_BASE_URL", ""),
			Timeout:    getEnvDuration("CONTENT_API_TIMEOUT", 10*time.Second),
		},
		Preview: PreviewConfig{
			Secret:    getEnv("PREVIEW_SECRET", ""),
			CookieTTL: getEnvDuration("PREVIEW_COOKIE_TTL", time.Hour),
		},
		Revalidate: RevalidateConfig{
			Secret: getEnv("REVALIDATE_SECRET", ""),
		},
		Forms: FormsConfig{
			RelayBaseURL:     strings.TrimRight(getEnv("FORM_RELAY_BASE_URL", "https://formspree.io"), "/"),
			ContactFormID:    getEnv("CONTACT_FORM_ID", ""),
			NewsletterFormID: getEnv("NEWSLETTER_FORM_ID", ""),
			RelayMode:        getEnv("RELAY_MODE", "inline"),
			RelayTimeout:     getEnvDuration("RELAY_TIMEOUT", 15*time.Second),
		},
		Mailchimp: MailchimpConfig{
			APIKey:       getEnv("MAILCHIMP_API_KEY", ""),
			ServerPrefix: getEnv("MAILCHIMP_SERVER_PREFIX", ""),
			ListID:       getEnv("MAILCHIMP_LIST_ID", ""),
		},
		Brevo: BrevoConfig{
			APIKey:  getEnv("BREVO_API_KEY", ""),
			ListID:  getEnv("BREVO_LIST_ID", ""),
			BaseURL: strings.TrimRight(getEnv("BREVO_API_URL", "https://api.brevo.com"), "/"),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", ""),
			Port: getEnv("SMTP_PORT", "1025"),
			From: getEnv("SMTP_FROM", "noreply@localhost"),
			To:   getEnv("SMTP_TO", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Analytics: AnalyticsConfig{
			MeasurementID: getEnv("GA_MEASUREMENT_ID", ""),
			TagManagerID:  getEnv("GTM_ID", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("FORM_RATE_LIMIT_RPS", 0.5),
			Burst: getEnvInt("FORM_RATE_LIMIT_BURST", 5),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	if c.ContentStore.ProjectID == "" {
		return fmt.Errorf("CONTENT_PROJECT_ID must be set")
	}

	urls := []struct {
		name  string
		value string
	}{
		{"SITE_URL", c.App.SiteURL},
		{"FORM_RELAY_BASE_URL", c.Forms.RelayBaseURL},
		{"CONTENT_API_BASE_URL", c.ContentStore.BaseURL},
		{"BREVO_API_URL", c.Brevo.BaseURL},
	}
	for _, u := range urls {
		if err := validation.Validate(u.value, is.URL); err != nil {
			return fmt.Errorf("%s: %w", u.name, err)
		}
	}

	switch c.Forms.RelayMode {
	case "inline", "queue":
	default:
		return fmt.Errorf("RELAY_MODE must be inline or queue, got %q", c.Forms.RelayMode)
	}

	if c.App.IsProduction() {
		if c.Preview.Secret == "" {
			return fmt.Errorf("PREVIEW_SECRET must be set in production")
		}
		if c.Revalidate.Secret == "" {
			return fmt.Errorf("REVALIDATE_SECRET must be set in production")
		}
		if strings.HasPrefix(c.App.SiteURL, "http://localhost") {
			return fmt.Errorf("SITE_URL must be set in production")
		}

		// Relay integrations are optional - only warn if not set
		if c.Forms.ContactFormID == "" && !c.SMTP.Enabled() {
			logger.Warn("CONTACT_FORM_ID not set, contact submissions will not be relayed", nil)
		}
		if c.Forms.NewsletterFormID == "" {
			logger.Warn("NEWSLETTER_FORM_ID not set, newsletter signups will not be relayed", nil)
		}
		if !c.Mailchimp.Enabled() && !c.Brevo.Enabled() {
			logger.Warn("no mailing-list provider configured, unsubscribe is a no-op", nil)
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
