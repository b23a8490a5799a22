// Package server owns the application lifecycle: it starts the HTTP
// server, waits for a shutdown signal, and closes infrastructure clients
// in order.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	pkgch "CourtPulse/pkg/clickhouse"
	"CourtPulse/pkg/cache"
	"CourtPulse/pkg/config"
	xhttp "CourtPulse/pkg/http"
	pkgkafka "CourtPulse/pkg/kafka"
	applogger "CourtPulse/pkg/logger"
)

// App encapsulates the running application.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	router     xhttp.Handler
	chClient   *pkgch.Client
	producer   *pkgkafka.Producer
	warmCache  *cache.LayeredCache
	httpServer *xhttp.Server
}

// New builds the application. producer and warmCache may be nil when the
// corresponding backend is disabled.
func New(cfg *config.Config, log *applogger.Logger, router xhttp.Handler, chClient *pkgch.Client, producer *pkgkafka.Producer, warmCache *cache.LayeredCache) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		router:    router,
		chClient:  chClient,
		producer:  producer,
		warmCache: warmCache,
	}
}

// Run starts the HTTP server and blocks until an interrupt or SIGTERM.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.router,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start failed", applogger.Error(err))
		return err
	}
	a.log.Info("serving",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}
	// Flush the log collector before its producer goes away.
	a.log.RemoveCollector()
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.warmCache != nil {
		if err := a.warmCache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
