package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/persist"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/telemetry"
	boltRepo "github.com/DRSN-tech/storefront-backend/internal/repository/bolt"
	"github.com/DRSN-tech/storefront-backend/internal/repository/converter/generated"
	redisRepo "github.com/DRSN-tech/storefront-backend/internal/repository/redis"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/closer"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func Run(cfg *config.Config, logger logger.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(registry)

	stateRepo, closeStorage, err := initStateRepo(cfg, logger)
	if err != nil {
		logger.Errorf(err, "failed to initialize state storage")
		return err
	}

	writer := persist.NewWriter(stateRepo, cfg.Writer, metrics, logger)
	writer.Start()

	cartUC := usecase.NewCartUC(stateRepo, writer, cfg.Cart.RecentlyViewedLimit, logger)
	favoritesUC := usecase.NewFavoritesUC(stateRepo, writer, logger)

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	cartUC.Init(initCtx)
	favoritesUC.Init(initCtx)
	initCancel()

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(cartUC, favoritesUC, metrics, registry)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// Порядок закрытия (LIFO): HTTP-сервер, затем писатель со сбросом очереди, затем хранилище
	cl := closer.NewCloser(0)
	cl.Add(closeStorage)
	cl.Add(func(ctx context.Context) error {
		writer.Stop()
		return nil
	})
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}

// initStateRepo выбирает бэкенд хранилища состояния по конфигурации.
// Возвращает репозиторий и функцию закрытия бэкенда.
func initStateRepo(cfg *config.Config, logger logger.Logger) (usecase.StateRepository, closer.Func, error) {
	conv := generated.NewStateConverterImpl()

	switch cfg.Storage.Driver {
	case config.StorageDriverBolt:
		db, err := clients.NewBoltDB(cfg.Storage)
		if err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}

		repo, err := boltRepo.NewStateRepo(db, conv, logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}

		logger.Infof("state storage: bolt (%s)", cfg.Storage.BoltPath)
		return repo, func(ctx context.Context) error { return db.Close() }, nil

	case config.StorageDriverRedis:
		client := clients.NewRedisClient(cfg.Redis)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			return nil, nil, e.Wrap(whereami.WhereAmI(), err)
		}

		logger.Infof("state storage: redis (%s)", cfg.Redis.Addr)
		return redisRepo.NewStateRepo(client, conv, logger), func(ctx context.Context) error { return client.Client.Close() }, nil

	default:
		return nil, nil, e.Wrap(cfg.Storage.Driver, e.ErrUnsupportedStorageDriver)
	}
}
