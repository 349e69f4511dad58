package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/me/matchably/internal/config"
	"github.com/me/matchably/internal/logging"
	"github.com/me/matchably/internal/store"
	"github.com/me/matchably/internal/ui"
	"github.com/me/matchably/pkg/matchably"
)

func main() {
	// .env participates when present; real env wins.
	_ = godotenv.Load()

	cfg := config.PortalFromEnv()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.matchably/portal.db)")
	flag.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "Matchably API URL")
	flag.BoolVar(&cfg.Secure, "secure", cfg.Secure, "Set the Secure flag on session cookies (behind TLS)")
	staticDir := flag.String("static", "", "Directory of static assets (optional)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := config.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine database path: %v\n", err)
			os.Exit(1)
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", filepath.Dir(p), err)
			os.Exit(1)
		}
		dbPath = p
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	// Backend client. User requests get per-session tokens; admin
	// pages use the configured admin token.
	clientCfg := matchably.DefaultConfig()
	clientCfg.BaseURL = cfg.BackendURL
	clientCfg.AdminToken = cfg.AdminToken
	client := matchably.NewClient(clientCfg, logger)
	if cfg.AdminToken == "" {
		logger.Info("admin token not set, admin pages will be rejected by the backend")
	}

	portal := ui.New(st, client, logger, ui.Config{Secure: cfg.Secure})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	portal.RegisterRoutes(r)
	if *staticDir != "" {
		r.Handle("/static/*", ui.StaticHandler(*staticDir))
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Expired sessions pile up otherwise.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := portal.Sessions().CleanupExpiredSessions(ctx)
				if err != nil {
					logger.Warn("session cleanup failed", "error", err)
				} else if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("portal starting", "addr", cfg.Addr, "backend", cfg.BackendURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("portal failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("portal stopped")
}
