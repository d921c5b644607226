package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rentfolio/property-management-service/internal/monitoring"
	"github.com/rentfolio/property-management-service/internal/storage"
	"github.com/rentfolio/property-management-service/internal/store"
)

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	var (
		backendName = flag.String("backend", envDefault("PM_BACKEND", "sqlite"), "Storage backend (sqlite, redis, memory)")
		dbPath      = flag.String("db-path", envDefault("PM_DB_PATH", "portfolio.db"), "SQLite database path")
		redisAddr   = flag.String("redis-addr", envDefault("PM_REDIS_ADDR", "localhost:6379"), "Redis address")
		metricsAddr = flag.String("metrics-addr", envDefault("PM_METRICS_ADDR", ":8081"), "Address for health and metrics HTTP server")
	)
	flag.Parse()

	backend, err := openBackend(*backendName, *dbPath, *redisAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}

	monitoring.InitMetrics()

	st, err := store.Open(context.Background(), backend)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load portfolio data")
	}
	defer st.Close()

	s := st.Stats()
	log.Info().
		Int("properties", s.TotalProperties).
		Int("active_tenants", s.TotalTenants).
		Float64("monthly_rent", s.TotalMonthlyRent).
		Float64("occupancy_rate", s.OccupancyRate).
		Int("late_payments", s.LatePayments).
		Msg("Portfolio loaded")

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		mux.Handle("/metrics", promhttp.Handler())

		httpServer := &http.Server{
			Addr:    *metricsAddr,
			Handler: mux,
		}

		log.Info().Msgf("HTTP server for health checks and metrics started on %s", *metricsAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down...")
}

func openBackend(name, dbPath, redisAddr string) (storage.Backend, error) {
	switch name {
	case "sqlite":
		return storage.OpenSQLite(dbPath)
	case "redis":
		return storage.OpenRedis(redisAddr)
	case "memory":
		return storage.NewMemory(), nil
	default:
		log.Fatal().Msgf("Unknown backend: %s", name)
		return nil, nil
	}
}
