package main

import (
	"context"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/config"
	"github.com/diewo77/go-complaints/internal/db"
	"github.com/diewo77/go-complaints/internal/logger"
	"github.com/diewo77/go-complaints/internal/metrics"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/view"
	"github.com/diewo77/go-complaints/web"
	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	configFlag      = flag.String("config", envOr("CONFIG_FILE", "config.yaml"), "Optional YAML configuration file")
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

// devSecret signs sessions in dev mode when SESSION_SECRET is unset.
const devSecret = "dev-insecure-session-secret-change-me"

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty || cfg.App.Dev})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	dbConn, err := db.Open(cfg.Database, log)
	if err != nil {
		return err
	}

	if *migrateOnlyFlag {
		if err := migrate(cfg, dbConn); err != nil {
			return err
		}
		log.Info().Msg("migrations completed successfully")
		return nil
	}
	if *seedOnlyFlag {
		if err := db.Seed(ctx, dbConn, cfg.Admin); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info().Msg("seeding completed successfully")
		return nil
	}

	if err := migrate(cfg, dbConn); err != nil {
		return err
	}
	if err := db.Seed(ctx, dbConn, cfg.Admin); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	secret, err := sessionSecret(cfg, log)
	if err != nil {
		return err
	}
	sess := SessionOptions{Auth: auth.Config{
		Secret:      secret,
		TTL:         cfg.Auth.SessionTTL,
		RememberTTL: cfg.Auth.RememberTTL,
		Issuer:      "go-complaints",
		Secure:      cfg.Auth.SecureCookie,
	}}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		sess.Revoker = auth.NewRedisRevoker(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("session revocation backed by redis")
	}

	renderer := view.New(web.Templates(), cfg.App.Dev)
	if err := renderer.Precompile(); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	flashKey := sha256.Sum256(append([]byte("flash:"), secret...))
	flashes := middleware.NewFlashes(flashKey[:], cfg.Auth.SecureCookie)

	routerCfg := NewRouterConfig(dbConn, renderer, flashes, sess, metrics.New())
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(dbConn, routerCfg, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Server.Port).Bool("dev", cfg.App.Dev).Str("db", cfg.Database.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}

func migrate(cfg *config.Config, dbConn *gorm.DB) error {
	if cfg.App.Migrations == "sql" {
		if err := db.MigrateSQL(cfg.Database.URL()); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
		return nil
	}
	if err := db.Migrate(dbConn); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func sessionSecret(cfg *config.Config, log zerolog.Logger) ([]byte, error) {
	if cfg.Auth.SessionSecret != "" {
		return []byte(cfg.Auth.SessionSecret), nil
	}
	if cfg.App.Dev {
		return []byte(devSecret), nil
	}
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return nil, errors.New("generate session secret")
	}
	log.Warn().Msg("SESSION_SECRET not set; using a random key, sessions will not survive a restart")
	return key, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
