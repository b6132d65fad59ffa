// Package main provides the Bookmarket storefront command line client.
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/bookmarketapp/bookmarket-client/internal/catalog"
	"github.com/bookmarketapp/bookmarket-client/internal/config"
	"github.com/bookmarketapp/bookmarket-client/internal/di"
	"github.com/bookmarketapp/bookmarket-client/internal/logger"
	"github.com/bookmarketapp/bookmarket-client/internal/mockstore"
	"github.com/bookmarketapp/bookmarket-client/internal/remote"
	"github.com/bookmarketapp/bookmarket-client/internal/session"
)

var (
	flagStore string
	flagOwner bool
)

var rootCmd = &cobra.Command{
	Use:           "bookmarket",
	Short:         "Browse and manage Bookmarket storefronts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "bookstore id to operate on")
	rootCmd.PersistentFlags().BoolVar(&flagOwner, "owner", false, "act as the owner of the selected store")

	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(coverCmd)
	rootCmd.AddCommand(logoCmd)
	rootCmd.AddCommand(profileCmd)
}

// app bundles the wired dependencies a command needs.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	client  *remote.Client
	session *session.Session
}

// newApp resolves dependencies from the container and derives the acting
// session from the persistent flags. The session is explicit: commands
// that mutate fail fast when --owner was not given.
func newApp() (*app, error) {
	injector := di.NewContainer()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil, err
	}
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, err
	}
	client, err := do.Invoke[*remote.Client](injector)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: log, client: client}
	if flagOwner {
		a.session = &session.Session{
			UserID:      "cli",
			Role:        session.RoleOwner,
			BookstoreID: flagStore,
		}
		// The local mock accepts a cookie in place of the hosted login
		// flow. The hosted service ignores it.
		if base, err := url.Parse(cfg.API.BaseURL); err == nil {
			client.HTTPClient().Jar.SetCookies(base, []*http.Cookie{mockstore.OwnerCookie(flagStore)})
		}
	}
	return a, nil
}

// controller builds a catalog controller scoped to the --store flag.
func (a *app) controller() (*catalog.Controller, error) {
	if flagStore == "" {
		return nil, fmt.Errorf("--store is required")
	}
	return catalog.New(a.client, a.session, a.logger.Logger, flagStore, a.cfg.API.PageSize), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
