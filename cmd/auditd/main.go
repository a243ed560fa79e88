package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/compliance"
	"github.com/abubakr3800/sc-standards/internal/consolidate"
	"github.com/abubakr3800/sc-standards/internal/export"
	"github.com/abubakr3800/sc-standards/internal/extract"
	"github.com/abubakr3800/sc-standards/internal/pipeline"
	"github.com/abubakr3800/sc-standards/internal/repository"
	"github.com/abubakr3800/sc-standards/internal/segment"
	"github.com/abubakr3800/sc-standards/internal/server"
	"github.com/abubakr3800/sc-standards/internal/textsource"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var standards *compliance.DB
	if cfg.Pipeline.StandardsPath != "" {
		standards, err = compliance.LoadFile(cfg.Pipeline.StandardsPath)
	} else {
		standards, err = compliance.LoadDefault()
	}
	if err != nil {
		logger.Error("failed to load standards database", "error", err)
		os.Exit(1)
	}
	logger.Info("standards loaded", "count", len(standards.StandardIDs()))

	processor := pipeline.NewProcessor(
		textsource.NewSource(logger),
		extract.NewExtractor(cfg.Tuning, logger),
		segment.NewSegmenter(logger),
		consolidate.NewConsolidator(cfg.Tuning, logger),
		compliance.NewEngine(standards, logger),
		cfg.Pipeline.DocumentTimeout,
		logger,
	)

	srv := server.New(
		processor,
		standards,
		repository.NewDocumentRepository(db, logger),
		repository.NewReportRepository(db, logger),
		export.NewService(logger),
		db,
		server.Options{
			UploadDir:      filepath.Join(os.TempDir(), "standards-audit"),
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
		},
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
