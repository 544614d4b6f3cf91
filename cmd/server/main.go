package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelpoints/internal/auth"
	authHandler "travelpoints/internal/auth/handler"
	authMetrics "travelpoints/internal/auth/metrics"
	authService "travelpoints/internal/auth/service"
	revocationStore "travelpoints/internal/auth/store/revocation"
	userStore "travelpoints/internal/auth/store/user"
	"travelpoints/internal/catalogue"
	catalogueMetrics "travelpoints/internal/catalogue/metrics"
	catalogueService "travelpoints/internal/catalogue/service"
	catalogueStore "travelpoints/internal/catalogue/store"
	httpapi "travelpoints/internal/http"
	jwttoken "travelpoints/internal/jwt_token"
	"travelpoints/internal/platform/config"
	"travelpoints/internal/platform/events"
	"travelpoints/internal/platform/httpserver"
	"travelpoints/internal/platform/logger"
	"travelpoints/internal/platform/metrics"
	"travelpoints/internal/platform/middleware"
	"travelpoints/internal/platform/migrations"
	"travelpoints/internal/platform/postgres"
	redisClient "travelpoints/internal/platform/redis"
	"travelpoints/internal/platform/tracing"
	"travelpoints/internal/points"
	rateLimitMetrics "travelpoints/internal/ratelimit/metrics"
	rateLimitMW "travelpoints/internal/ratelimit/middleware"
	"travelpoints/internal/ratelimit/store/bucket"
	"travelpoints/internal/seed"
	"travelpoints/internal/travellog"
	travelLogMetrics "travelpoints/internal/travellog/metrics"
	travelLogService "travelpoints/internal/travellog/service"
	travelLogStore "travelpoints/internal/travellog/store"
	"travelpoints/pkg/platform/tx"
	"travelpoints/pkg/secrets"
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence implementations selected by configuration.
type stores struct {
	catalogue catalogueStore.Backend
	users     authService.UserStore
	travelLog travelLogService.Store
}

type revocationList interface {
	authService.RevocationList
	middleware.TokenRevocationChecker
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Environment, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	defaultRegion := points.Region(cfg.DefaultHomeRegion)
	if !defaultRegion.IsKnown() {
		return fmt.Errorf("unknown default home region %q", cfg.DefaultHomeRegion)
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, log)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	st, closeStores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	rdb, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		log.Info("redis connected")
		// The in-memory catalogue is reseeded on every start.
		if cfg.SeedOnStart || cfg.DatabaseURL == "" {
			purgeCatalogueCache(ctx, rdb, log)
		}
	}

	publisher, err := buildPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var catalogueBackend catalogueService.Store = st.catalogue
	if rdb != nil {
		catalogueBackend = catalogueStore.NewRedisCache(st.catalogue, rdb.Client, cfg.CatalogueCacheTTL,
			catalogueStore.WithCacheLogger(log),
			catalogueStore.WithCacheMetrics(catalogueMetrics.New()),
		)
	}
	catalogueSvc := catalogue.NewService(catalogueBackend,
		catalogueService.WithLogger(log),
		catalogueService.WithDefaultRegion(defaultRegion),
	)

	var revoked revocationList = revocationStore.NewInMemoryTRL()
	if rdb != nil {
		revoked = revocationStore.NewRedisTRL(rdb.Client, revocationStore.WithMetrics(revocationStore.NewMetrics()))
	}

	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.TTL)
	authSvc := auth.NewService(st.users, revoked, jwtService, secrets.NewHasher(0), catalogueSvc,
		authService.WithLogger(log),
		authService.WithMetrics(authMetrics.New()),
	)

	travelLogSvc := travellog.NewService(st.travelLog, catalogueSvc, authSvc,
		travelLogService.WithLogger(log),
		travelLogService.WithMetrics(travelLogMetrics.New()),
		travelLogService.WithPublisher(publisher),
	)

	requireAuth := middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(jwtService), revoked, log)

	router := httpapi.NewRouter(
		httpapi.Options{Logger: log, Metrics: metrics.New()},
		catalogue.NewHandler(catalogueSvc, authSvc, log, requireAuth),
		auth.NewHandler(authSvc, log, requireAuth, authHandler.WithLoginLimit(buildLoginLimit(cfg, rdb, log))),
		travellog.NewHandler(travelLogSvc, log, requireAuth),
	)

	log.Info("starting travelpoints", "addr", cfg.Addr, "environment", cfg.Environment)
	srv := httpserver.New(cfg.Addr, router,
		httpserver.WithLogger(log),
		httpserver.WithShutdownTimeout(shutdownTimeout),
	)
	return srv.Run(ctx)
}

// buildStores selects Postgres when DATABASE_URL is set; otherwise in-memory
// stores seeded with the embedded catalogue.
func buildStores(ctx context.Context, cfg config.Server, log *slog.Logger) (stores, func(), error) {
	if cfg.DatabaseURL == "" {
		cat := catalogueStore.NewInMemory()
		if err := seedCatalogue(ctx, cat, log); err != nil {
			return stores{}, nil, err
		}
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return stores{
			catalogue: cat,
			users:     userStore.New(),
			travelLog: travelLogStore.NewInMemory(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.WithDriver(cfg.DatabaseDriver))
	if err != nil {
		return stores{}, nil, err
	}
	closeDB := func() { _ = db.Close() }

	cat := catalogueStore.NewPostgres(db)
	if cfg.SeedOnStart {
		if err := migrateAndSeed(ctx, db, cat, log); err != nil {
			closeDB()
			return stores{}, nil, err
		}
	}
	return stores{
		catalogue: cat,
		users:     userStore.NewPostgres(db),
		travelLog: travelLogStore.NewPostgres(db),
	}, closeDB, nil
}

func migrateAndSeed(ctx context.Context, db *sql.DB, cat seed.Writer, log *slog.Logger) error {
	res, err := migrations.Up(db)
	if err != nil {
		return err
	}
	log.Info("schema migrated", "from", res.From, "to", res.To, "no_change", res.NoChange)
	return tx.Run(ctx, db, func(ctx context.Context) error {
		return seedCatalogue(ctx, cat, log)
	})
}

func seedCatalogue(ctx context.Context, w seed.Writer, log *slog.Logger) error {
	data, err := seed.Default()
	if err != nil {
		return err
	}
	res, err := seed.Apply(ctx, w, data)
	if err != nil {
		return err
	}
	log.Info("catalogue seeded", "countries", res.Countries, "cities", res.Cities)
	return nil
}

func purgeCatalogueCache(ctx context.Context, rdb *redisClient.Client, log *slog.Logger) {
	n, err := catalogueStore.PurgeCache(ctx, rdb.Client)
	if err != nil {
		log.Warn("catalogue cache purge failed", "error", err)
		return
	}
	log.Info("catalogue cache purged", "keys", n)
}

func buildPublisher(ctx context.Context, cfg config.Server, log *slog.Logger) (events.Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NewLogPublisher(log), nil
	}
	p, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic,
		events.WithLogger(log),
		events.WithMetrics(events.NewMetrics()),
	)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureTopic(ctx, 3, 1); err != nil {
		log.Warn("could not ensure kafka topic, relying on auto-creation", "error", err)
	}
	log.Info("publishing travel-log events to kafka", "topic", cfg.Kafka.Topic)
	return p, nil
}

// buildLoginLimit limits logins per client IP. With Redis the budget is shared
// across replicas and the in-process limiter takes over while Redis fails.
func buildLoginLimit(cfg config.Server, rdb *redisClient.Client, log *slog.Logger) func(http.Handler) http.Handler {
	local := bucket.NewInMemoryBucketStore(cfg.RateLimitAuthPerMinute, time.Minute)
	opts := []rateLimitMW.Option{rateLimitMW.WithMetrics(rateLimitMetrics.New())}

	var limiter rateLimitMW.Limiter = local
	if rdb != nil {
		limiter = bucket.NewRedisStore(rdb.Client, cfg.RateLimitAuthPerMinute, time.Minute)
		opts = append(opts, rateLimitMW.WithFallback(local))
	}
	return rateLimitMW.New(limiter, log, opts...).RateLimit("auth")
}
