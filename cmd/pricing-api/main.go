// README: Entry point; loads config, wires stores, geocoder and pricing services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carhire/internal/config"
	httptransport "carhire/internal/http"
	"carhire/internal/infra"
	"carhire/internal/maps"
	"carhire/internal/modules/location"
	"carhire/internal/modules/pricing"
	"carhire/internal/modules/season"
	"carhire/internal/modules/transfer"
	"carhire/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := infra.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Error("postgres init", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	geocoder, err := newGeocoder(ctx, cfg, log)
	if err != nil {
		log.Error("geocoder init", "err", err)
		os.Exit(1)
	}

	pricingSvc := pricing.NewService(pricing.NewStore(dbPool), season.NewStore(dbPool), log)

	zone := location.Zone{
		Center:   types.Point{Lat: cfg.Zone.CenterLat, Lng: cfg.Zone.CenterLng},
		RadiusKm: cfg.Zone.RadiusKm,
		Keywords: cfg.Zone.Keywords,
	}
	transferSvc := transfer.NewService(transfer.NewEngine(zone, geocoder), transfer.NewStore(dbPool), log)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Vehicles:        pricingSvc,
		Transfers:       transferSvc,
		ProviderTimeout: cfg.ProviderTimeout,
		Log:             log,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr, "geocoder", geocoder != nil)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "err", err)
		os.Exit(1)
	}
}

// newGeocoder returns nil when no maps API key is configured. The Redis cache
// is optional and skipped when CARHIRE_REDIS_ADDR is empty or unreachable.
func newGeocoder(ctx context.Context, cfg config.Config, log *slog.Logger) (maps.Provider, error) {
	if cfg.Maps.APIKey == "" {
		log.Warn("CARHIRE_MAPS_API_KEY not set; address-only transfers use keyword matching")
		return nil, nil
	}
	svc, err := maps.NewGeocodingService(maps.Options{
		APIKey:   cfg.Maps.APIKey,
		Language: cfg.Maps.Language,
		Region:   cfg.Maps.Region,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Redis.Addr == "" {
		return svc, nil
	}
	rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Warn("geocode cache disabled", "err", err)
		return svc, nil
	}
	return maps.NewCachedGeocoder(svc, rdb, cfg.Maps.CacheTTL, log), nil
}
