package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"launchops/internal/api"
	"launchops/internal/config"
	"launchops/internal/monitoring"
	"launchops/internal/notify"
	"launchops/internal/recon"
	"launchops/internal/scheduler"
	"launchops/internal/store"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Printf("Failed to load configuration (%v), using defaults", err)
		cfg = config.Default()
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	st, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	monitor := monitoring.NewMonitor()
	hub := api.NewHub()
	engine := recon.NewEngine(st,
		recon.WithMonitor(monitor),
		recon.WithPublisher(hub),
	)
	notifier := notify.New(st, cfg.OverdueAge()).WithPublisher(hub)

	sched := scheduler.New(st)
	sched.AddInterval("full_sync", cfg.AutoSyncInterval(), engine.FullSync)
	sched.AddDailyAt("daily_digest", cfg.Sync.DigestHour, func() { notifier.DailyDigest() })
	sched.AddInterval("overdue_scan", cfg.OverdueScanInterval(), func() { notifier.OverdueScan() })
	sched.Start()
	defer sched.Stop()

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port)
	}

	srv := api.NewServer(st, engine, monitor, hub, cfg.Auth.Secret)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		sched.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// openStore builds the configured store backend. The returned close func is
// a no-op for backends without a connection to release.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return store.NewMemoryStore(), func() {}, nil
	case "sqlite3", "postgres":
		s, err := store.OpenSQL(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		return store.NewRedisStore(client), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
