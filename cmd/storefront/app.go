package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/service"
	"storefront/internal/storage"
)

// app holds the wired client for one invocation.
type app struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	out      *printer
	sessions *auth.SessionStore
	auth     service.AuthService
	cart     service.CartService
	catalog  service.CatalogService
	cache    service.CartCache

	closeStore func() error
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger, out *printer) (*app, error) {
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	sessions := auth.NewSessionStore(store)
	gw := gateway.New(cfg.BaseURL, sessions, gateway.WithLogger(log))

	return &app{
		cfg:        cfg,
		log:        log,
		out:        out,
		sessions:   sessions,
		auth:       service.NewAuthService(gw, sessions, log),
		cart:       service.NewCartService(gw, log),
		catalog:    service.NewCatalogService(gw, log),
		cache:      service.NewCartCache(store, log),
		closeStore: closeStore,
	}, nil
}

func (a *app) close() {
	if a.closeStore == nil {
		return
	}
	if err := a.closeStore(); err != nil {
		a.log.WithError(err).Warn("close storage")
	}
}
