// The opsdeck-sandbox command serves a self-contained copy of the platform
// API over a local SQLite database, seeded with fixture data, for demos and
// development against the console.
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

	"github.com/opsdeck/opsdeck/internal/logging"
	"github.com/opsdeck/opsdeck/internal/sandbox"
	"github.com/opsdeck/opsdeck/internal/sandbox/db"
)

func main() {
	addr := flag.String("addr", ":8320", "Listen address")
	dbPath := flag.String("db", "", "Database path (default ~/.opsdeck/sandbox.db, or :memory:)")
	fixturePath := flag.String("seed", "", "YAML fixture to seed from (default: built-in dataset)")
	reseed := flag.Bool("reseed", false, "Reload the fixture even if the database already has data")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "auto", "Log format (text, json, auto)")
	flag.Parse()

	logger := logging.NewLogger(logging.ParseLevel(*logLevel), *logFormat)

	path := *dbPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".opsdeck")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		path = filepath.Join(dir, "sandbox.db")
	}

	st, err := db.Open(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}

	seeded, err := st.Seeded(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check seed state: %v\n", err)
		os.Exit(1)
	}
	if !seeded || *reseed {
		fx := db.DefaultFixture()
		if *fixturePath != "" {
			fx, err = db.LoadFixture(*fixturePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
				os.Exit(1)
			}
			logger.Info("fixture loaded", "path", *fixturePath)
		}
		if err := st.Seed(ctx, fx); err != nil {
			fmt.Fprintf(os.Stderr, "seed database: %v\n", err)
			os.Exit(1)
		}
		logger.Info("database seeded", "path", path)
	}

	srv := sandbox.New(st, logger)
	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv,
	}

	go func() {
		logger.Info("sandbox starting", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("sandbox failed", "error", err)
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
	logger.Info("sandbox stopped")
}
