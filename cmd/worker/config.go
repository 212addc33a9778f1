package main

import (
	"fmt"

	"heritage-site/internal/config"
	"heritage-site/pkg/logger"
)

// loadConfig reads the shared application config. The worker only uses the
// Redis, relay and SMTP sections but validates the whole set so both
// processes reject the same environments.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger.Info("[Config] worker", map[string]interface{}{
		"redis":      cfg.Redis.Host,
		"relay_mode": cfg.Forms.RelayMode,
		"smtp":       cfg.SMTP.Enabled(),
	})
	return cfg, nil
}
