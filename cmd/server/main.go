package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ovenbird/bakehouse/internal/config"
	"github.com/ovenbird/bakehouse/internal/es"
	"github.com/ovenbird/bakehouse/internal/events"
	"github.com/ovenbird/bakehouse/internal/handlers"
	httpserver "github.com/ovenbird/bakehouse/internal/transport/http"

	"github.com/ovenbird/bakehouse/internal/logging"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := handlers.EnsureAdmin(db, configuration.ADMIN_USERNAME, configuration.ADMIN_PASSWORD); err != nil {
		log.Fatalf("admin seed error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var prod *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = events.NewProducer(strings.Split(configuration.KAFKA_ADDRESS, ","))
	}

	var esClient *elasticsearch.Client
	if configuration.ES_URL != "" {
		c, err := es.NewClient(configuration)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			esClient = c
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), httpserver.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:              db,
		JWTSecret:       jwtSecret,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret},
		ProductHandler:  &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient},
		CategoryHandler: &handlers.CategoryHandler{DB: db},
		OrderHandler:    &handlers.OrderHandler{DB: db, Producer: prod},
		InquiryHandler:  &handlers.InquiryHandler{DB: db},
		AttachmentHandler: &handlers.AttachmentHandler{
			DB:           db,
			Dir:          configuration.UPLOAD_DIR,
			MaxBytes:     configuration.UPLOAD_MAX_BYTES,
			MaxFiles:     configuration.UPLOAD_MAX_FILES,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "application/pdf"},
		},
		ReviewHandler: &handlers.ReviewHandler{DB: db, Producer: prod},
		SearchHandler: handlers.NewSearchHandler(esClient),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.APP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("bakehouse server listening", "addr", configuration.APP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
