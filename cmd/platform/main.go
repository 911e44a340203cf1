package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KiwiAmenazante/DREMO/internal/api"
	"github.com/KiwiAmenazante/DREMO/internal/config"
	"github.com/KiwiAmenazante/DREMO/internal/core/services"
	"github.com/KiwiAmenazante/DREMO/internal/gateways"
	"github.com/KiwiAmenazante/DREMO/internal/health"
	"github.com/KiwiAmenazante/DREMO/internal/log"
	"github.com/KiwiAmenazante/DREMO/internal/metrics"
	client "github.com/KiwiAmenazante/DREMO/pkg/http"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Error(context.Background(), "cannot load config", err)
		os.Exit(1)
	}

	// Context with log
	ctx := log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout)

	// Providers share one non-retrying client; retry policy belongs to
	// callers of the API, not to the adapters.
	httpClient := client.NewClient(http.Client{Timeout: 15 * time.Second})
	primary := gateways.NewConsultasPeru(cfg.ConsultasPeru, httpClient)
	fallback := gateways.NewDecolecta(cfg.Decolecta, httpClient)
	resolver := services.NewIdentityResolver(primary, fallback)

	directory := gateways.NewSheetsDirectory(cfg.Directory)
	healthStatus := health.New(map[string]health.Ping{"directory": directory})

	mux := chi.NewRouter()
	api.NewServer(cfg, resolver, directory, healthStatus, metrics.New()).Routes(ctx, mux)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: mux,
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, "server started", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "starting http server", err)
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutting down http server", err)
	}
}
