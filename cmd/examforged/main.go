package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"examforge/internal/async"
	"examforge/internal/classify"
	"examforge/internal/common"
	"examforge/internal/exam"
	"examforge/internal/export"
	"examforge/internal/importer"
	"examforge/internal/ingest"
	"examforge/internal/parse"
	"examforge/internal/pdftext"
	"examforge/internal/repository"
	"examforge/internal/server"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Database
	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Healthcheck DB on startup
	if err := db.HealthCheck(ctx, 3*time.Second); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database health OK", "dialect", db.Dialect())

	// Wire stores
	questions := repository.NewQuestionStore(db, logger)
	records := repository.NewImportRecordStore(db, logger)
	stats := repository.NewDomainStatStore(db, logger)

	// Parsing pipeline
	classifier, err := classify.Load(cfg.Paths.TaxonomyPath)
	if err != nil {
		logger.Error("failed to load taxonomy", "error", err, "path", cfg.Paths.TaxonomyPath)
		os.Exit(1)
	}
	extractor := pdftext.DefaultChain(logger)
	images := parse.NewAssociator(cfg.Paths.ExhibitsDir, logger)
	parser := parse.NewParser(extractor, classifier, images, logger)
	scanner := ingest.NewScanner(records, logger)
	imp := importer.NewImporter(scanner, parser, classifier, questions, records, stats, logger)

	// HTTP surfaces
	exporter := export.NewService(logger)
	composer := exam.NewComposer(questions, stats, logger)
	srv := server.NewServer(cfg, imp, exporter, composer, logger)

	// Background scans run off the request path; finished sessions land in
	// the server's registry so the review endpoints can see them.
	queue := async.NewScanQueue(func(ctx context.Context, job async.Job) error {
		session, err := imp.Scan(ctx, job.Dir)
		if err != nil {
			return err
		}
		if session.NeedsImport() {
			srv.RememberSession(session)
		}
		return nil
	}, logger, async.WithProcessTimeout(cfg.Ingest.ScanTimeout))

	// Directory watcher feeds the queue
	if cfg.Ingest.WatchEnabled {
		events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{cfg.Paths.PDFsDir},
			Debounce: cfg.Ingest.WatchDebounce,
		})
		if err != nil {
			logger.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		go func() {
			for path := range events {
				logger.Info("document detected", "path", path)
				_ = queue.Enqueue(ctx, async.Job{Dir: cfg.Paths.PDFsDir, Trigger: async.TriggerWatch})
			}
		}()
		go func() {
			for err := range watchErrs {
				logger.Warn("watcher error", "error", err)
			}
		}()
		logger.Info("watching for new documents", "dir", cfg.Paths.PDFsDir)
	}

	// HTTP server
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("HTTP serving", "addr", cfg.Server.HTTPAddr)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	fmt.Println("stopped.")
}
