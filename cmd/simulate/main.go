package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/patientflow/edsim/internal/api"
	"github.com/patientflow/edsim/internal/config"
	"github.com/patientflow/edsim/internal/engine"
	"github.com/patientflow/edsim/internal/live"
	"github.com/patientflow/edsim/internal/reportstore"
	"github.com/patientflow/edsim/internal/snapshot"
	"github.com/patientflow/edsim/internal/telemetry"
)

// runConfig holds the process-level flags, following the teacher's
// loadConfig()/getEnv() idiom from every cmd/*/main.go collapsed into flags
// since this is a single binary rather than one of nine microservices.
type runConfig struct {
	ConfigPath string
	Preset     string
	Label      string

	ServeAPI  bool
	APIAddr   string
	JWTSecret string

	NATSURL      string
	InfluxURL    string
	InfluxOrg    string
	InfluxBucket string
	InfluxToken  string

	RedisAddr string

	PostgresDSN string

	ReportOut string
}

func loadFlags() runConfig {
	rc := runConfig{}
	flag.StringVar(&rc.ConfigPath, "config", "", "path to a YAML config file (overrides -preset)")
	flag.StringVar(&rc.Preset, "preset", "baseline", "named config preset: baseline or enhanced")
	flag.StringVar(&rc.Label, "label", "", "label recorded alongside the persisted report")

	flag.BoolVar(&rc.ServeAPI, "serve", false, "run the control-plane HTTP API instead of a single batch run")
	flag.StringVar(&rc.APIAddr, "api-addr", getEnv("EDSIM_API_ADDR", ":8080"), "control API listen address")
	flag.StringVar(&rc.JWTSecret, "jwt-secret", getEnv("EDSIM_JWT_SECRET", "dev-secret"), "HMAC secret for control API tokens")

	flag.StringVar(&rc.NATSURL, "nats-url", getEnv("NATS_URL", ""), "NATS URL for telemetry (empty disables)")
	flag.StringVar(&rc.InfluxURL, "influx-url", getEnv("INFLUX_URL", ""), "InfluxDB URL for occupancy telemetry (empty disables)")
	flag.StringVar(&rc.InfluxOrg, "influx-org", getEnv("INFLUX_ORG", ""), "InfluxDB organization")
	flag.StringVar(&rc.InfluxBucket, "influx-bucket", getEnv("INFLUX_BUCKET", ""), "InfluxDB bucket")
	flag.StringVar(&rc.InfluxToken, "influx-token", getEnv("INFLUX_TOKEN", ""), "InfluxDB auth token")

	flag.StringVar(&rc.RedisAddr, "redis-addr", getEnv("REDIS_ADDR", ""), "Redis address for the occupancy snapshot (empty disables)")
	flag.StringVar(&rc.PostgresDSN, "postgres-dsn", getEnv("POSTGRES_DSN", ""), "Postgres DSN for report persistence (empty disables)")

	flag.StringVar(&rc.ReportOut, "report-out", "", "write the finished report as JSON to this path (default: stdout)")
	flag.Parse()
	return rc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	rc := loadFlags()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := resolveConfig(rc)
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutdown signal received")
		cancel()
	}()

	telemetryPub := telemetry.New(telemetry.Config{
		NATSURL:      rc.NATSURL,
		InfluxURL:    rc.InfluxURL,
		InfluxOrg:    rc.InfluxOrg,
		InfluxBucket: rc.InfluxBucket,
		InfluxToken:  rc.InfluxToken,
	}, log)
	defer telemetryPub.Close()

	snapPub := snapshot.New(rc.RedisAddr, 30*time.Second)
	defer snapPub.Close()

	feed := live.NewFeed()
	feed.Start(ctx)
	defer feed.Stop()

	var store *reportstore.Store
	if rc.PostgresDSN != "" {
		db, err := sql.Open("postgres", rc.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open postgres", zap.Error(err))
		}
		defer db.Close()
		store = reportstore.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal("failed to ensure report schema", zap.Error(err))
		}
		if err := store.EnsureTransportCountsSchema(ctx); err != nil {
			log.Fatal("failed to ensure transport counts schema", zap.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if rc.ServeAPI {
		srv := api.NewServer(api.Config{
			Addr:            rc.APIAddr,
			JWTSecret:       rc.JWTSecret,
			TokenTTL:        24 * time.Hour,
			RateLimitWindow: time.Minute,
			RateLimitMax:    120,
		}, feed, telemetryPub, snapPub, log)
		g.Go(func() error {
			log.Info("control API listening", zap.String("addr", rc.APIAddr))
			return srv.Run(gctx, rc.APIAddr)
		})
		if err := g.Wait(); err != nil {
			log.Error("server exited", zap.Error(err))
		}
		return
	}

	eng := engine.New(cfg, log).WithTelemetry(telemetryPub).WithSnapshot(snapPub).WithLiveFeed(feed)
	report := eng.Run()

	if store != nil {
		configJSON, _ := json.Marshal(cfg)
		run := reportstore.Run{
			ID:         uuid.New(),
			Label:      rc.Label,
			ConfigJSON: configJSON,
			Report:     report,
			CreatedAt:  time.Now(),
		}
		if err := store.Save(ctx, run); err != nil {
			log.Error("failed to persist report", zap.Error(err))
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatal("failed to marshal report", zap.Error(err))
	}
	if rc.ReportOut == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(rc.ReportOut, out, 0o644); err != nil {
		log.Fatal("failed to write report", zap.Error(err))
	}
}

func resolveConfig(rc runConfig) (config.Config, error) {
	if rc.ConfigPath != "" {
		return config.LoadFile(rc.ConfigPath)
	}
	return config.Preset(rc.Preset)
}
