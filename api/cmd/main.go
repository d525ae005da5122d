package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"

	"github.com/evently/event-actions-service/internal/application/actions"
	"github.com/evently/event-actions-service/internal/config"
	"github.com/evently/event-actions-service/internal/engine"
	rediscache "github.com/evently/event-actions-service/internal/infrastructure/caching/redis"
	"github.com/evently/event-actions-service/internal/infrastructure/db/postgres"
	"github.com/evently/event-actions-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/evently/event-actions-service/internal/logger"
	"github.com/evently/event-actions-service/internal/transport/http/handlers"
	authmw "github.com/evently/event-actions-service/internal/transport/http/middleware"
	"github.com/evently/event-actions-service/internal/transport/http/router"
)

// sysClock implements engine.Clock using system time.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the service.
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Cache    *rediscache.Client
	Consumer *rabbitmq.Consumer
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Consumer != nil {
			_ = app.Consumer.Close()
		}
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	repo := postgres.New(db)

	var cache *rediscache.Client
	var svcCache actions.Cache
	if cfg.RedisURL != "" {
		c, err := rediscache.New(cfg.RedisURL)
		if err != nil {
			zlog.Warn().Err(err).Msg("redis unavailable: serving uncached")
		} else {
			cache = c
			svcCache = c
		}
	}

	// 2) Application
	eng := engine.NewWithThresholds(sysClock{}, cfg.CancellationDeadline, cfg.BookingCutoff)
	svc := actions.New(repo, svcCache, eng, cfg.CacheTTLEvent)

	// Lifecycle consumer keeps the cache honest.
	var consumer *rabbitmq.Consumer
	if cfg.RabbitURL != "" {
		c, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, svc)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit consumer init failed")
		}
		consumer = c
		consumer.Start(context.Background())
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: cache invalidation messages will not be consumed")
	}

	// 3) Transport
	h := handlers.NewActionsHandler(svc)
	auth := authmw.NewAuth(cfg.JWTSecret, cfg.JWTIssuer)
	z := handlers.NewHealthHandler()

	// 4) Router
	httpHandler := router.New(h, auth, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:   cfg,
		Server:   srv,
		DB:       db,
		Cache:    cache,
		Consumer: consumer,
	}
}
