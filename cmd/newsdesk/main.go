// @title                       newsdesk
// @version                     1.0
// @description                 Web client of the news site: public pages and the staff console.
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        newsdesk_sid
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/kickside/newsdesk/internal/api"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
	mongostore "github.com/kickside/newsdesk/internal/infrastructure/db/mongo"
	redisstore "github.com/kickside/newsdesk/internal/infrastructure/db/redis"
	"github.com/kickside/newsdesk/internal/infrastructure/imagehost"
	"github.com/kickside/newsdesk/internal/infrastructure/queue"
	"github.com/kickside/newsdesk/internal/pkg/config"
	"github.com/kickside/newsdesk/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "newsdesk",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		URL:  cfg.Redis.URL,
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	deps := api.Dependencies{
		Config:  cfg,
		Log:     log,
		Redis:   rdb,
		Backend: backend.NewClient(backend.Config{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Backend.Timeout}, logger.Component("backend")),
		Images: imagehost.NewCloudinary(imagehost.Config{
			BaseURL:      cfg.Cloudinary.BaseURL,
			CloudName:    cfg.Cloudinary.Name,
			UploadPreset: cfg.Cloudinary.UploadPreset,
		}, logger.Component("imagehost")),
	}

	// The audit trail is optional: without MongoDB the console still works.
	var dispatcher *queue.AuditDispatcher
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.AuditEnabled {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			log.Warn().Err(err).Msg("mongodb unavailable, audit trail disabled")
		} else {
			defer func() {
				if err := mongostore.Disconnect(client, 5*time.Second); err != nil {
					log.Error().Err(err).Msg("mongodb disconnect")
				}
			}()
			repo := mongostore.NewAuditRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("audit indexes not created")
			}
			dispatcher = queue.NewAuditDispatcher(cfg.AuditWorkers, repo, logger.Component("audit"))
			dispatcher.Start(workerCtx)

			deps.Mongo = db
			deps.AuditLog = repo
			deps.Audit = dispatcher
		}
	}

	e := api.NewRouter(deps)
	e.Server.ReadHeaderTimeout = 10 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("newsdesk listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if dispatcher != nil {
		// Requests are done; store what they queued.
		dispatcher.Close()
	}
	stopWorkers()
	log.Info().Msg("bye")
}
