package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/handler"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/middleware"
	"github.com/ncobase/qeonaru/service"
	"github.com/ncobase/qeonaru/version"
)

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	data    *data.Data
	handler *handler.Handler
	server  *http.Server
}

// NewApp wires configuration, logging, storage, services and handlers.
func NewApp(ctx context.Context, configFile string) (*App, func(), error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log := logger.StdLogger()
	log.SetVersion(version.GetVersionInfo().Version)

	dataLayer, err := data.New(ctx, cfg.Data, log)
	if err != nil {
		cleanupLogger()
		return nil, nil, fmt.Errorf("failed to create data layer: %w", err)
	}

	svc := service.NewService(dataLayer, cfg.Auth, log)
	h := handler.NewHandler(svc, dataLayer, log)

	app := &App{
		config:  cfg,
		logger:  log,
		data:    dataLayer,
		handler: h,
	}

	cleanup := func() {
		if err := dataLayer.Close(); err != nil {
			log.Error(context.Background(), "failed to close data layer", "error", err)
		}
		cleanupLogger()
	}

	return app, cleanup, nil
}

// Router builds the gin engine with middleware and routes.
func (a *App) Router() *gin.Engine {
	if a.config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(a.logger),
		middleware.Trace(),
		middleware.Logger(a.logger),
		middleware.CORS(a.config.CORS.AllowOrigins),
	)
	a.handler.RegisterRoutes(router)
	return router
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down
// within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.watchConfig()

	sc := a.config.Server
	addr := net.JoinHostPort(sc.Host, strconv.Itoa(sc.Port))
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.Router(),
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(context.Background(), "Starting server", "addr", addr, "driver", a.data.Driver())
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error(shutdownCtx, "Server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info(context.Background(), "Server exited")
	return nil
}

// watchConfig applies log level changes from the config file at runtime.
func (a *App) watchConfig() {
	if a.config.Viper.ConfigFileUsed() == "" {
		return
	}
	a.config.Watch(func(next *config.Config) {
		a.logger.ApplyLevel(next.Logger.Level)
		a.logger.Info(context.Background(), "config reloaded", "log_level", next.Logger.Level)
	}, func(err error) {
		a.logger.Warn(context.Background(), "config reload rejected", "error", err)
	})
}
