package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"bnbBack/internal/cache"
	"bnbBack/internal/config"
	"bnbBack/internal/events"
	"bnbBack/internal/handlers"
	"bnbBack/internal/metrics"
	"bnbBack/internal/repositories"
	"bnbBack/internal/services"
	"bnbBack/utils"
)

type application struct {
	logger           *zap.SugaredLogger
	db               *sql.DB
	tokens           *utils.Manager
	metrics          *metrics.Metrics
	rankingHub       *RankingHub
	apartmentHandler *handlers.ApartmentHandler
	reviewHandler    *handlers.ReviewHandler
	uploadDir        string
	uploadPrefix     string
}

// dependencies are the optional backends resolved from configuration.
type dependencies struct {
	cache       services.DetailCache
	events      services.EventPublisher
	attachments services.AttachmentStore
	closers     []func()
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func initializeApp(cfg config.Config, db *sql.DB, log *zap.SugaredLogger, deps *dependencies) (*application, error) {
	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	m := metrics.New("bnb")
	hub := NewRankingHub(log)

	// Repositories
	apartmentRepo := &repositories.ApartmentRepository{DB: db}
	ownerRepo := &repositories.OwnerRepository{DB: db}
	serviceTagRepo := &repositories.ServiceTagRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}

	// Services
	apartmentService := &services.ApartmentService{
		ApartmentRepo:  apartmentRepo,
		OwnerRepo:      ownerRepo,
		ServiceTagRepo: serviceTagRepo,
		ReviewRepo:     reviewRepo,
		Attachments:    deps.attachments,
		Cache:          deps.cache,
		Events:         deps.events,
		Notifier:       hub,
		Metrics:        m,
		Logger:         log,
		QueryTimeout:   cfg.Database.QueryTimeout,
		UploadTimeout:  cfg.Storage.UploadTimeout,
	}
	reviewService := &services.ReviewService{
		ReviewRepo:   reviewRepo,
		Cache:        deps.cache,
		Events:       deps.events,
		Metrics:      m,
		Logger:       log,
		QueryTimeout: cfg.Database.QueryTimeout,
	}

	app := &application{
		logger:     log,
		db:         db,
		tokens:     tokens,
		metrics:    m,
		rankingHub: hub,
		apartmentHandler: &handlers.ApartmentHandler{
			Service:        apartmentService,
			Logger:         log,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
		},
		reviewHandler: &handlers.ReviewHandler{Service: reviewService, Logger: log},
	}
	if cfg.Storage.Driver == "local" {
		app.uploadDir = cfg.Storage.LocalDir
		app.uploadPrefix = strings.TrimSuffix(cfg.Storage.PublicPrefix, "/")
	}
	return app, nil
}

// buildDependencies connects the optional backends. Redis and NATS are
// skipped with a warning when unreachable; the attachment store is required.
func buildDependencies(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*dependencies, error) {
	deps := &dependencies{cache: cache.Noop{}, events: events.Noop{}}

	if cfg.Redis.Addr != "" {
		c, err := cache.NewApartmentCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.DetailTTL)
		if err != nil {
			log.Warnf("redis unavailable, detail cache disabled: %v", err)
		} else {
			deps.cache = c
			deps.closers = append(deps.closers, func() { _ = c.Close() })
		}
	}

	if cfg.NATS.URL != "" {
		p, err := events.NewPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			log.Warnf("nats unavailable, events disabled: %v", err)
		} else {
			deps.events = p
			deps.closers = append(deps.closers, p.Close)
		}
	}

	switch cfg.Storage.Driver {
	case "s3":
		s3cfg := cfg.Storage.S3
		store, err := utils.NewS3AttachmentStore(utils.S3Config{
			Endpoint:  s3cfg.Endpoint,
			Region:    s3cfg.Region,
			Bucket:    s3cfg.Bucket,
			Folder:    s3cfg.Folder,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			PublicURL: s3cfg.PublicURL,
		})
		if err != nil {
			deps.close()
			return nil, fmt.Errorf("s3 attachment store: %w", err)
		}
		deps.attachments = store
	default:
		deps.attachments = &utils.LocalAttachmentStore{
			Dir:          cfg.Storage.LocalDir,
			PublicPrefix: cfg.Storage.PublicPrefix,
		}
	}
	return deps, nil
}

func openDB(ctx context.Context, driver, dsn string, maxIdle int) (*sql.DB, error) {
	dsn, err := normalizeDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxIdleConns(maxIdle)
	return db, nil
}

// normalizeDSN forces parseTime on MySQL DSNs so DATE columns scan into
// time.Time.
func normalizeDSN(driver, dsn string) (string, error) {
	if driver != "mysql" {
		return dsn, nil
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
