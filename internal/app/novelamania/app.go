package novelamania

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/novelamania/internal/cache"
	"github.com/magabrotheeeer/novelamania/internal/config"
	"github.com/magabrotheeeer/novelamania/internal/grpc/health"
	"github.com/magabrotheeeer/novelamania/internal/lib/jwt"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/metrics"
	"github.com/magabrotheeeer/novelamania/internal/migrations"
	"github.com/magabrotheeeer/novelamania/internal/rabbitmq"
	"github.com/magabrotheeeer/novelamania/internal/services/access"
	authservice "github.com/magabrotheeeer/novelamania/internal/services/auth"
	"github.com/magabrotheeeer/novelamania/internal/services/entitlement"
	"github.com/magabrotheeeer/novelamania/internal/services/notifier"
	"github.com/magabrotheeeer/novelamania/internal/services/packages"
	"github.com/magabrotheeeer/novelamania/internal/services/session"
	"github.com/magabrotheeeer/novelamania/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP API вместе с gRPC health check.
type App struct {
	server     *http.Server
	health     *health.Server
	healthAddr string
	logger     *slog.Logger
	db         *storage.Storage
	cache      *cache.Cache
	conn       *amqp.Connection
	ch         *amqp.Channel
}

// New подключает хранилища и брокер, накатывает миграции, создает администратора
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	sessions := session.NewRegistry(db, cfg.SessionTTL, logger, m)
	authService := authservice.NewAuthService(db, sessions, jwtMaker, notifier.New(ch), logger, m,
		authservice.Settings{
			MaxSessions:   cfg.MaxActiveSessions,
			ResetTokenTTL: cfg.ResetTokenTTL,
			ResetURL:      cfg.ResetURL,
		})
	authenticator := authservice.NewAuthenticator(jwtMaker, sessions, db, m)
	packageService := packages.NewService(db, cacheRedis, cfg.PackageCacheTTL, logger)
	evaluator := entitlement.NewEvaluator(packageService, db, logger)
	gate := access.NewGate(db, evaluator)

	if err = authService.EnsureAdmin(ctx, cfg.AdminContact, cfg.AdminPassword); err != nil {
		logger.Error("failed to create administrator", sl.Err(err))
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Dependencies{
		Auth:          authService,
		Authenticator: authenticator,
		Gate:          gate,
		Evaluator:     evaluator,
		Packages:      packageService,
		DB:            db,
		Registry:      registry,
		TokenTTL:      jwtMaker.TTL(),
		RateRPS:       cfg.RPS,
		RateBurst:     cfg.Burst,
		TrustProxy:    cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		health:     health.New(db, 0, logger),
		healthAddr: cfg.GRPCHealthAddress,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		conn:       conn,
		ch:         ch,
	}, nil
}

// Run обслуживает HTTP и gRPC health до отмены ctx, затем корректно останавливает оба сервера.
func (a *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.healthAddr)
	if err != nil {
		return fmt.Errorf("failed to listen health address: %w", err)
	}

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("gRPC health service listening on", slog.String("address", lis.Addr().String()))
		if err := a.health.Serve(healthCtx, lis); err != nil {
			errCh <- err
		}
	}()
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server gracefully")
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := a.server.Shutdown(timeoutCtx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	stopHealth()
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
