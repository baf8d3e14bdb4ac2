package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"storefront/docs"
	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/fixture"
	"storefront/internal/handler"
	"storefront/internal/router"
)

// @title Storefront Mock API
// @version 1.0
// @description Local stand-in for the storefront API: login, catalog and cart endpoints.
// @host localhost:8000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := loadFixture(cfg.FixtureFile)
	if err != nil {
		log.WithError(err).Fatal("fixture init")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(store, jwtService, log)
	cartHandler := handler.NewCartHandler(store, log)
	catalogHandler := handler.NewCatalogHandler(store)

	router.Register(e, jwtService, authHandler, cartHandler, catalogHandler, log)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

// loadFixture reads the YAML fixture at path, or the built-in demo data
// when path is empty.
func loadFixture(path string) (*fixture.Store, error) {
	if path == "" {
		return fixture.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := fixture.ReadData(f)
	if err != nil {
		return nil, err
	}
	store := fixture.NewStore()
	if err := store.Load(data); err != nil {
		return nil, err
	}
	return store, nil
}
