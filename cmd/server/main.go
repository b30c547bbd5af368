// Package main is the entry point for the casino wager settlement API
// server.  It wires together all services and starts the HTTP server
// alongside the WebSocket hub and the background liability sweep.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/api"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/cache"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/config"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/payout"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/repository"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/scheduler"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/service"
	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/ws"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // postgres driver
)

func main() {
	// ── 1. Environment & logger ───────────────────────────────────────────────
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.MustLoad()

	var logHandler slog.Handler
	if cfg.IsProd() {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	logger.Info("starting casino server", "env", cfg.Server.Env, "port", cfg.Server.Port)

	// ── 2. Database ───────────────────────────────────────────────────────────
	db, err := sqlx.Connect("postgres", cfg.DB.DSN)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err = db.Ping(); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	// ── 3. Migrations ─────────────────────────────────────────────────────────
	if err = runMigrations(db, "migrations"); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// ── 4. Repositories ───────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	betRepo := repository.NewBetRepository(db)
	ledger := repository.NewLedgerRepository(db)

	// ── 5. Payout resolvers ───────────────────────────────────────────────────
	resolvers := payout.DefaultRegistry()

	// ── 6. Services ───────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(db, userRepo, ledger, cfg)
	betSvc := service.NewBetService(db, betRepo, gameRepo, ledger, resolvers, cfg)
	rankingSvc := service.NewRankingService(userRepo, betRepo)

	// Optional Redis leaderboard cache
	if cfg.Redis.Addr != "" {
		rdb, rerr := cache.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if rerr != nil {
			logger.Warn("redis unavailable, rankings will be computed per request", "err", rerr)
		} else {
			rankingSvc.SetCache(cache.NewRankingCache(rdb, cfg.Redis.RankingTTL))
			logger.Info("ranking cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.RankingTTL)
		}
	}

	betSvc.SetRankingInvalidator(rankingSvc)

	// ── 7. WebSocket Hub ──────────────────────────────────────────────────────
	jwtSecret := []byte(cfg.JWT.AccessSecret)
	var allowedOrigins []string
	if ori := os.Getenv("WS_ALLOWED_ORIGINS"); ori != "" {
		for _, o := range strings.Split(ori, ",") {
			allowedOrigins = append(allowedOrigins, strings.TrimSpace(o))
		}
	}
	hub := ws.NewHub(jwtSecret, allowedOrigins)
	betSvc.SetBroadcaster(hub)

	// ── 8. Root context + signal handling ─────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go hub.Run()
	logger.Info("websocket hub started")

	// ── 9. Liability sweep ────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(betRepo, cfg, logger)
	sched.Start(ctx)

	// ── 10. HTTP Router ───────────────────────────────────────────────────────
	router := api.SetupRouter(api.RouterDeps{
		AuthSvc:    authSvc,
		BetSvc:     betSvc,
		RankingSvc: rankingSvc,
		UserRepo:   userRepo,
		GameRepo:   gameRepo,
		BetRepo:    betRepo,
		Ledger:     ledger,
		Hub:        hub,
		Cfg:        cfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// ── 11. Start server ──────────────────────────────────────────────────────
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
			stop() // trigger graceful shutdown
		}
	}()

	// ── 12. Graceful shutdown ─────────────────────────────────────────────────
	<-ctx.Done()
	logger.Info("shutdown signal received, draining connections…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "err", err)
	}

	db.Close()
	logger.Info("server stopped cleanly")
}

// runMigrations reads all *.sql files from dir, sorted by name, and executes
// them sequentially.  Idempotent: SQL files should use IF NOT EXISTS / ON CONFLICT.
func runMigrations(db *sqlx.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("runMigrations: read dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("runMigrations: read %q: %w", f, err)
		}
		if _, err = db.Exec(string(data)); err != nil {
			return fmt.Errorf("runMigrations: exec %q: %w", f, err)
		}
		slog.Info("migration applied", "file", filepath.Base(f))
	}
	return nil
}
