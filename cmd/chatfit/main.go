// cmd/chatfit/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"chatfit/internal/chat"
	"chatfit/internal/config"
	"chatfit/internal/logstore"
	"chatfit/internal/server"
	"chatfit/internal/storage"
)

var (
	debug   = flag.Bool("debug", false, "Enable debug logging")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("chatfit version 1.0.0")
		os.Exit(0)
	}

	log, err := buildLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Load(log)

	local, err := storage.NewSQLiteStore(cfg.DBPath, log)
	if err != nil {
		log.Fatal("failed to open local store", zap.Error(err))
	}

	// The remote tier is best-effort: a bad or missing DSN degrades the
	// session to local-only durability instead of refusing to start.
	var remote storage.Store
	if cfg.PostgresDSN != "" {
		pg, err := storage.NewPostgresStore(cfg.PostgresDSN, log)
		if err != nil {
			log.Warn("remote store unavailable, running local-only", zap.Error(err))
		} else {
			remote = pg
		}
	} else {
		log.Info("no POSTGRES_DSN configured, running local-only")
	}

	store := storage.NewTiered(remote, local, log)
	logs := logstore.New(store, cfg.UserID, log)
	bot := chat.NewBot(logs, log)

	srv := server.New(&server.Config{Host: cfg.Host, Port: cfg.Port}, store, logs, bot, cfg.UserID, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Info("received shutdown signal")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
