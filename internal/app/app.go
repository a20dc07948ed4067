package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roulette_client/internal/config"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		// .env опционален — конфиг может прийти из окружения
		zap.L().Info("no .env file loaded", zap.Error(err))
	}

	// Суммы на проводе — числа, как их ждет UI
	decimal.MarshalJSONWithoutQuotes = true

	s.initServiceProvider()
	sp := s.ServiceProvider
	logger := sp.Logger()
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	// Контроллер раунда: позиция барабана, первичный снимок, цикл опроса
	rounds := sp.RoundService()
	if err := rounds.Start(ctx); err != nil {
		return err
	}
	defer rounds.Stop()

	// Лента изменений движка
	feedConsumer := sp.FeedConsumer()
	feedConsumer.Start()
	defer feedConsumer.Stop()

	server := &http.Server{
		Addr:    sp.HTTPCfg().Address(),
		Handler: sp.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("address", sp.HTTPCfg().Address()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
