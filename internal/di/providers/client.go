package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookmarketapp/bookmarket-client/internal/config"
	"github.com/bookmarketapp/bookmarket-client/internal/logger"
	"github.com/bookmarketapp/bookmarket-client/internal/remote"
)

// ProvideClient provides the resource API client.
func ProvideClient(i do.Injector) (*remote.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return remote.New(remote.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		RPS:     cfg.API.RPS,
		Burst:   cfg.API.Burst,
	}, log.Logger)
}
