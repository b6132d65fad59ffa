// Package providers contains dependency injection providers for the
// Bookmarket client tools.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookmarketapp/bookmarket-client/internal/config"
	"github.com/bookmarketapp/bookmarket-client/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Debug("configuration loaded",
		"environment", cfg.App.Environment,
		"api_base_url", cfg.API.BaseURL,
		"page_size", cfg.API.PageSize,
	)

	return log, nil
}
