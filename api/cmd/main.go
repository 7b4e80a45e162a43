package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	zlog "github.com/rs/zerolog/log"

	"github.com/openshelf/branch-events/internal/application/contact"
	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/config"
	redisclient "github.com/openshelf/branch-events/internal/infrastructure/caching/redis"
	rabbitpub "github.com/openshelf/branch-events/internal/infrastructure/messaging/rabbitmq"
	"github.com/openshelf/branch-events/internal/logger"
	"github.com/openshelf/branch-events/internal/opendata"
	"github.com/openshelf/branch-events/internal/transport/http/handlers"
	"github.com/openshelf/branch-events/internal/transport/http/router"
)

// sysClock implements events.Clock using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// resolveResource returns the configured resource id, or discovers one
// from the catalogue package listing when only a package id was given.
func resolveResource(catalogue *opendata.Client, resourceID, packageID string) string {
	if resourceID != "" {
		return resourceID
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := catalogue.FindDatastoreResource(ctx, packageID)
	if err != nil {
		zlog.Fatal().Err(err).Str("package", packageID).Msg("datastore resource discovery failed")
	}
	zlog.Info().Str("package", packageID).Str("resource", id).Msg("datastore resource discovered")
	return id
}

// App holds all dependencies for the service
type App struct {
	Config *config.Config
	Server *http.Server
	Events *events.Service

	Redis     *redisclient.Client
	Publisher *rabbitpub.Publisher
	Cron      *cron.Cron
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := NewApp(cfg)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
		if app.Redis != nil {
			_ = app.Redis.Close()
		}
	}()

	// The service is useless without a first snapshot; fail fast so the
	// orchestrator restarts us rather than serving empty calendars.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := app.Events.Refresh(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("initial refresh failed")
		}
	}

	app.Cron.Start()
	defer app.Cron.Stop()

	zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal().Err(err).Msg("server crashed")
	}
}

func NewApp(cfg *config.Config) *App {
	// 1) Infrastructure
	var rdb *redisclient.Client
	var rcache events.Cache
	if cfg.RedisURL != "" {
		c, err := redisclient.New(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis init failed")
		}
		rdb = c
		rcache = c
		zlog.Info().Msg("redis response cache ready")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: responses will not be cached")
	}

	var rabbit *rabbitpub.Publisher
	var pub contact.Publisher = contact.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: contact messages will be dropped")
	}

	catalogue := opendata.NewClient(cfg.CatalogueBaseURL, cfg.CatalogueTimeout)

	eventsRes := resolveResource(catalogue, cfg.EventsResourceID, cfg.EventsPackageID)
	branchesRes := resolveResource(catalogue, cfg.BranchesResource, cfg.BranchesPackage)

	// 2) Application
	svc := events.New(catalogue, sysClock{}, rcache, events.Options{
		EventsResource:    eventsRes,
		BranchesResource:  branchesRes,
		PageSize:          cfg.PageSize,
		MaxRecords:        cfg.MaxRecords,
		ResultCacheSize:   cfg.ResultCacheSize,
		DistanceCacheSize: cfg.DistanceCacheSize,
		TTLCalendar:       cfg.CacheTTLCalendar,
		TTLRecent:         cfg.CacheTTLRecent,
	})
	contactSvc := contact.New(pub)

	// 3) Scheduled refresh
	cr := cron.New()
	if _, err := cr.AddFunc(cfg.RefreshCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := svc.Refresh(ctx); err != nil {
			zlog.Error().Err(err).Msg("scheduled refresh failed")
		}
	}); err != nil {
		zlog.Fatal().Err(err).Str("spec", cfg.RefreshCron).Msg("bad REFRESH_CRON")
	}

	// 4) Transport
	ev := handlers.NewEventsHandler(svc, sysClock{})
	loc := handlers.NewLocationsHandler(svc)
	ct := handlers.NewContactHandler(contactSvc)
	z := handlers.NewHealthHandler(svc)

	httpHandler := router.New(ev, loc, ct, z, cfg)

	// 5) Server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		Events:    svc,
		Redis:     rdb,
		Publisher: rabbit,
		Cron:      cr,
	}
}
