// Package main runs the in-memory mock of the Bookmarket resource API
// for local development.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/bookmarketapp/bookmarket-client/internal/di"
	"github.com/bookmarketapp/bookmarket-client/internal/di/providers"
	"github.com/bookmarketapp/bookmarket-client/internal/logger"
	"github.com/bookmarketapp/bookmarket-client/internal/mockstore"
)

func main() {
	injector := di.NewContainer()

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start mock store: %v\n", err)
		os.Exit(1)
	}

	handle, err := do.Invoke[*providers.MockServerHandle](injector)
	if err != nil {
		log.WithError(err).Fatal("failed to build mock server")
	}
	store := do.MustInvoke[*mockstore.Store](injector)

	go func() {
		log.Info("mock store listening",
			"addr", handle.Server.Addr,
			"store", store.BookstoreID(),
		)
		if err := handle.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("mock server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := handle.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}
	if err := injector.Shutdown(); err != nil {
		log.Error("container shutdown error", "error", err)
	}
}
