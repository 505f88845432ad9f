package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/contracts-backend/internal/config"
	"github.com/ignatzorin/contracts-backend/internal/db"
	"github.com/ignatzorin/contracts-backend/internal/export"
	httpHandlers "github.com/ignatzorin/contracts-backend/internal/http/handlers"
	"github.com/ignatzorin/contracts-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/contracts-backend/internal/http/router"
	"github.com/ignatzorin/contracts-backend/internal/logger"
	"github.com/ignatzorin/contracts-backend/internal/repository"
	"github.com/ignatzorin/contracts-backend/internal/service"
	"github.com/ignatzorin/contracts-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	applied, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка миграций")
	}
	logger.Log.WithField("applied", applied).Info("main: миграции применены")

	rateStore, closeRedis := newRateLimitStore(ctx, cfg)
	defer closeRedis()

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Репозитории.
	profileRepo := repository.NewProfileRepository(dbConn)
	contractRepo := repository.NewContractRepository(dbConn)
	ledgerRepo := repository.NewLedgerRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()

	// Сервисы.
	contractService := service.NewContractService(contractRepo)
	transferService := service.NewTransferService(ledgerRepo, hub)
	reportService := service.NewReportService(reportRepo)

	// HTTP хэндлеры.
	engine := httpRouter.SetupRouter(
		cfg,
		tokenManager,
		profileRepo,
		rateStore,
		httpHandlers.NewContractHandler(contractService),
		httpHandlers.NewPaymentHandler(transferService),
		httpHandlers.NewReportHandler(reportService, export.NewExporter()),
		httpHandlers.NewWSHandler(hub, tokenManager, cfg.AllowedOrigins),
		httpHandlers.NewHealthHandler(dbConn),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Завершаем сервер при получении сигнала или падении соседней горутины.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("main: сервер завершился с ошибкой")
		return
	}
	logger.Log.Info("main: сервер остановлен")
}

// newRateLimitStore подключает redis, если задан REDIS_ADDR; иначе лимиты хранятся в памяти.
func newRateLimitStore(ctx context.Context, cfg *config.Config) (limiter.Store, func()) {
	if cfg.RedisAddr == "" {
		store, _ := middleware.NewRateLimitStore(nil)
		return store, func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Log.WithError(err).Warn("main: ошибка закрытия redis")
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Log.WithError(err).WithField("addr", cfg.RedisAddr).
			Warn("main: redis недоступен, лимиты запросов хранятся в памяти")
		closeClient()
		store, _ := middleware.NewRateLimitStore(nil)
		return store, func() {}
	}

	store, err := middleware.NewRateLimitStore(client)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось создать redis store")
	}
	logger.Log.WithFields(logrus.Fields{"addr": cfg.RedisAddr}).Info("main: лимиты запросов хранятся в redis")
	return store, closeClient
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Warn("main: ошибка закрытия базы")
	}
}
