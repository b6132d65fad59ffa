// Package di provides dependency injection configuration for the
// Bookmarket client tools.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookmarketapp/bookmarket-client/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Remote store client
	do.Provide(injector, providers.ProvideClient)

	// Local mock store
	do.Provide(injector, providers.ProvideMockStore)
	do.Provide(injector, providers.ProvideMockServer)

	return injector
}
