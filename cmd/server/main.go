package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/shopkit/paytoggle/internal/api"
	"github.com/shopkit/paytoggle/internal/audit"
	"github.com/shopkit/paytoggle/internal/config"
	"github.com/shopkit/paytoggle/internal/gateways"
	"github.com/shopkit/paytoggle/internal/nonce"
	"github.com/shopkit/paytoggle/internal/store"
	"github.com/shopkit/paytoggle/internal/telemetry"
	"github.com/shopkit/paytoggle/internal/webhook"
	"github.com/shopkit/paytoggle/internal/zones"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	ctx := context.Background()
	st, err := store.NewStore(ctx, cfg.StoreType, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store")
	}
	defer st.Close()

	zoneCatalog, err := loadZones(cfg.ZonesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.ZonesFile).Msg("zone catalog")
	}
	gatewayCatalog, err := loadGateways(cfg.GatewaysFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.GatewaysFile).Msg("gateway catalog")
	}

	telemetry.Init()

	auditSvc := audit.NewService(log, audit.NewLogSink(log))

	var dispatcher *webhook.Dispatcher
	if len(cfg.WebhookEndpoints) > 0 {
		endpoints := make([]webhook.Endpoint, 0, len(cfg.WebhookEndpoints))
		for _, u := range cfg.WebhookEndpoints {
			endpoints = append(endpoints, webhook.Endpoint{URL: u, Secret: cfg.WebhookSecret})
		}
		dispatcher = webhook.NewDispatcher(endpoints, log)
		dispatcher.Start()
		defer dispatcher.Close()
	}

	srvAPI := api.NewServer(api.Deps{
		Store:           st,
		Zones:           zones.NewResolver(zoneCatalog),
		Gateways:        gatewayCatalog,
		Nonces:          nonce.New(cfg.NonceSecret, cfg.NonceLifetime),
		Audit:           auditSvc,
		Webhooks:        dispatcher,
		AdminAPIKey:     cfg.AdminAPIKey,
		SettingsURL:     cfg.SettingsURL,
		LookupRatePerIP: cfg.LookupRatePerIP,
		Logger:          log,
	})

	// initial snapshot so reads have a view before the first save
	if err := srvAPI.RebuildSnapshot(ctx); err != nil {
		log.Fatal().Err(err).Msg("load rules")
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srvAPI.Router(),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 0, // SSE stream stays open
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("metrics server")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShut)
	_ = metricsSrv.Shutdown(ctxShut)
	log.Info().Msg("stopped")
}

func loadZones(path string) (*zones.StaticCatalog, error) {
	if path == "" {
		return zones.NewStaticCatalog(nil), nil
	}
	return zones.LoadFile(path)
}

func loadGateways(path string) (gateways.Catalog, error) {
	if path == "" {
		return gateways.NewStaticCatalog(nil), nil
	}
	return gateways.LoadFile(path)
}
