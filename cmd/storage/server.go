package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XJIeI5/calculator/internal/config"
	"github.com/XJIeI5/calculator/internal/storage"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	configPtr := flag.String("config", "", "path to yaml config")
	hostPtr := flag.String("host", "", "host of server")
	portPtr := flag.Int("port", 0, "port of server")
	dbPtr := flag.String("db", "", "path to sqlite database")
	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Override(*hostPtr, *portPtr, *dbPtr); err != nil {
		slog.Error("invalid flags", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Error("open db", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(context.TODO()); err != nil {
		logger.Error("ping db", "err", err)
		os.Exit(1)
	}
	if err := storage.CreateTables(context.TODO(), db); err != nil {
		logger.Error("create tables", "err", err)
		os.Exit(1)
	}

	s := storage.GetServer(cfg, db, logger)
	go func() {
		logger.Info("run storage server", "host", cfg.Host, "port", cfg.Port)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "err", err)
			os.Exit(1)
		}
	}()

	var stopChan = make(chan os.Signal, 2)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	<-stopChan // wait for SIGINT
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("stop storage server")
}
