package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/baechuer/account-service/internal/application/account"
	"github.com/baechuer/account-service/internal/audit"
	"github.com/baechuer/account-service/internal/config"
	"github.com/baechuer/account-service/internal/infrastructure/db/postgres"
	"github.com/baechuer/account-service/internal/infrastructure/db/sqlite"
	"github.com/baechuer/account-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/account-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/account-service/internal/infrastructure/redis"
	"github.com/baechuer/account-service/internal/infrastructure/security"
	"github.com/baechuer/account-service/internal/logger"
	http_handlers "github.com/baechuer/account-service/internal/transport/http/handlers"
	"github.com/baechuer/account-service/internal/transport/http/middleware"
	"github.com/baechuer/account-service/internal/transport/http/response"
	"github.com/baechuer/account-service/internal/transport/http/router"
	"github.com/baechuer/account-service/internal/userdata"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB      func(addr string, debug bool) (*sql.DB, error)
	MigrateDB  func(ctx context.Context, db *sql.DB) error
	OpenSQLite func(ctx context.Context, path string) (*sqlite.UserStore, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface {
	account.EventPublisher
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	ctx := context.Background()

	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) user store
	users, readiness, cleanupFns, err := openStore(ctx, cfg, deps)
	if err != nil {
		return nil, nil, err
	}

	// 2) redis cache (best-effort)
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; user cache disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			readiness["redis"] = c
			if rc, ok := c.(*redis.Client); ok {
				users = redis.NewCachedUserStore(users, rc, cfg.UserCacheTTL)
			}
		}
	}

	// 3) publisher
	var pub account.EventPublisher
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.Env != "dev" {
				runCleanup(cleanupFns)
				return nil, nil, fmt.Errorf("rabbitmq: %w", err)
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			pub = p
			cleanupFns = append(cleanupFns, func() { _ = p.Close() })
		}
	} else if cfg.Env != "dev" {
		runCleanup(cleanupFns)
		return nil, nil, fmt.Errorf("missing required env var: RABBIT_URL (ENV=%s)", cfg.Env)
	}
	if pub == nil {
		pub = memory.NewNoopPublisher(logger.Logger)
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	issuer, err := security.NewJWTIssuer(security.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 5) policies + service
	registerPolicy, err := userdata.PolicyByName(cfg.RegisterPolicy)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}
	validatePolicy, err := userdata.PolicyByName(cfg.ValidatePolicy)
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	svc := account.NewService(users, hasher, issuer, pub, account.Config{
		RegisterPolicy: registerPolicy,
		ValidatePolicy: validatePolicy,
	}).WithAudit(audit.New(logger.Logger).Hook())

	// seed (dev only)
	if cfg.Env == "dev" {
		SeedUsers(ctx, users, hasher, logger.Logger)
	}

	// 6) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      http_handlers.NewHealthHandler(readiness),
		Account:     http_handlers.NewAccountHandler(svc),
		AuthMW:      middleware.Auth(svc, response.WriteError),
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 7) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	logger.Logger.Info().
		Str("env", cfg.Env).
		Str("store", cfg.StoreDriver).
		Str("register_policy", registerPolicy.Name()).
		Str("validate_policy", validatePolicy.Name()).
		Msg("server wired")

	return srv, func() { runCleanup(cleanupFns) }, nil
}

// openStore builds the configured user store and the readiness checks that go with it.
func openStore(ctx context.Context, cfg *config.Config, deps Deps) (account.UserStore, map[string]http_handlers.Pinger, []func(), error) {
	readiness := map[string]http_handlers.Pinger{}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres: %w", err)
		}
		cleanup := []func(){func() { _ = db.Close() }}

		mctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := deps.MigrateDB(mctx, db); err != nil {
			runCleanup(cleanup)
			return nil, nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}

		store := postgres.NewUserStore(db)
		readiness["store"] = store
		return store, readiness, cleanup, nil

	case config.StoreSQLite:
		store, err := deps.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		readiness["store"] = store
		return store, readiness, []func(){func() { _ = store.Close() }}, nil

	case config.StoreMemory:
		logger.Logger.Warn().Msg("using in-memory user store; data is lost on restart")
		return memory.NewUserStore(), readiness, nil, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (*sql.DB, error) {
			return config.NewDB(addr, debug, logger.Logger)
		},
		MigrateDB:  postgres.Migrate,
		OpenSQLite: sqlite.Open,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url, exchange)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
