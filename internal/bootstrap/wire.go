package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/taskvault/auth-service/internal/application/auth"
	"github.com/taskvault/auth-service/internal/audit"
	"github.com/taskvault/auth-service/internal/config"
	"github.com/taskvault/auth-service/internal/infrastructure/db/postgres"
	"github.com/taskvault/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/taskvault/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/taskvault/auth-service/internal/infrastructure/redis"
	"github.com/taskvault/auth-service/internal/infrastructure/security"
	"github.com/taskvault/auth-service/internal/logger"
	http_handlers "github.com/taskvault/auth-service/internal/transport/http/handlers"
	"github.com/taskvault/auth-service/internal/transport/http/middleware"
	"github.com/taskvault/auth-service/internal/transport/http/response"
	"github.com/taskvault/auth-service/internal/transport/http/router"
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

	NewDB func(addr string, debug bool) (DBCloser, error)

	// NewRedis returns the concrete client so the limiter wiring below
	// cannot be handed something it would have to type-assert.
	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) user repo
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	userRepo := postgres.NewUserRepo(sqlDB)

	// 3) redis (best-effort, rate limiting only)
	var redisCli *redis.Client
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	mailPub, ok := pub.(auth.MailPublisher)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: publisher does not implement auth.MailPublisher")
	}

	// 5) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := security.NewVerificationTokenIssuer()
	signer := security.NewJWTSigner(cfg.JWTSecret, "taskvault-auth")

	// 6) service
	authSvc := auth.NewService(
		userRepo,
		hasher,
		tokens,
		signer,
		mailPub,
		auth.Config{
			SessionTTL:         cfg.SessionTTL,
			VerifyEmailBaseURL: cfg.VerifyEmailBaseURL,
			MailTimeout:        cfg.MailTimeout,
		},
	)

	authSvc = authSvc.WithAudit(audit.NewSink(logger.Logger))

	// 7) handlers + middleware
	secureCookies := cfg.Env != "dev"

	authH := http_handlers.NewAuthHandler(authSvc, cfg.SessionTTL, secureCookies, cfg.LoginRedirectURL)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	sessionMW := middleware.Session(authSvc)
	requireUser := middleware.RequireUser(response.WriteError)

	// rate limit (fail-open)
	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		fwLimiter = redis.NewFixedWindowLimiter(redisCli)
	}

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,

		RequestIDMW: middleware.RequestID,
		TimingMW:    middleware.Timing(cfg.Env, logger.Logger),
		MetricsMW:   middleware.Metrics,
		SessionMW:   sessionMW,
		RequireUser: requireUser,

		RLRegister: rl("auth.register", 3, time.Minute),
		RLLogin:    rl("auth.login", 5, time.Minute),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: redis.New,
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
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
