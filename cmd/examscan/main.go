package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"examforge/internal/classify"
	"examforge/internal/common"
	"examforge/internal/export"
	"examforge/internal/importer"
	"examforge/internal/ingest"
	"examforge/internal/parse"
	"examforge/internal/pdftext"
	"examforge/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		dir      = flag.String("dir", "", "directory to scan for exam PDFs (required)")
		out      = flag.String("out", "", "review workbook XLSX path (optional, defaults to parent directory)")
		dbURL    = flag.String("db", "", "database DSN (overrides DB_URL)")
		taxonomy = flag.String("taxonomy", "", "taxonomy JSON path (overrides TAXONOMY_PATH)")
		exhibits = flag.String("exhibits", "", "exhibit image output directory (overrides EXHIBITS_DIR)")
		doImport = flag.Bool("import", true, "import parsed questions into the database")
		jsonLogs = flag.Bool("json-logs", true, "emit JSON logs (text logs when false)")
	)
	flag.Parse()

	_ = godotenv.Load()

	// Validate required flags
	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	// If output file not specified, use parent directory with default filename
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "scan_review.xlsx")
	}

	// Setup logger
	var handler slog.Handler
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration, letting flags win over env
	cfg := common.LoadConfig()
	cfg.Paths.PDFsDir = *dir
	if *dbURL != "" {
		cfg.Database.DSN = *dbURL
	}
	if *taxonomy != "" {
		cfg.Paths.TaxonomyPath = *taxonomy
	}
	if *exhibits != "" {
		cfg.Paths.ExhibitsDir = *exhibits
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database
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

	// Wire stores
	questions := repository.NewQuestionStore(db, logger)
	records := repository.NewImportRecordStore(db, logger)
	stats := repository.NewDomainStatStore(db, logger)

	// Setup classifier
	classifier, err := classify.Load(cfg.Paths.TaxonomyPath)
	if err != nil {
		logger.Error("failed to load taxonomy", "error", err, "path", cfg.Paths.TaxonomyPath)
		os.Exit(1)
	}

	// Setup parsing pipeline
	extractor := pdftext.DefaultChain(logger)
	images := parse.NewAssociator(cfg.Paths.ExhibitsDir, logger)
	parser := parse.NewParser(extractor, classifier, images, logger)
	scanner := ingest.NewScanner(records, logger)
	imp := importer.NewImporter(scanner, parser, classifier, questions, records, stats, logger)

	// Scan directory
	logger.Info("starting scan", "dir", cfg.Paths.PDFsDir)
	session, err := imp.Scan(ctx, cfg.Paths.PDFsDir)
	if err != nil {
		logger.Error("failed to scan directory", "error", err)
		os.Exit(1)
	}

	if !session.NeedsImport() {
		logger.Info("nothing new to review", "dir", cfg.Paths.PDFsDir, "files_found", session.FilesFound)
		fmt.Printf("Scan complete!\n")
		fmt.Printf("- Files found: %d\n", session.FilesFound)
		fmt.Printf("- New documents: 0\n")
		return
	}

	logger.Info("scan complete",
		"files_found", session.FilesFound,
		"documents_parsed", len(session.Reports),
		"questions", session.TotalQuestions(),
		"valid", session.ValidQuestions(),
		"hints", len(session.Hints))

	// Write review workbook
	exporter := export.NewService(logger)
	if err := exporter.WriteSession(*out, session); err != nil {
		logger.Error("failed to write review workbook", "error", err, "path", *out)
		os.Exit(1)
	}

	// Import unless this is a dry run
	var result *importer.ImportResult
	if *doImport {
		result, err = imp.Import(ctx, session, nil)
		if err != nil {
			logger.Error("failed to import questions", "error", err)
			os.Exit(1)
		}
		logger.Info("import complete",
			"imported", result.Imported,
			"skipped", result.Skipped,
			"total_in_db", result.TotalInDB)
	}

	// Print summary
	fmt.Printf("Scan complete!\n")
	if session.Demo {
		fmt.Printf("- %s\n", session.Issues.Info)
	}
	fmt.Printf("- Files found: %d\n", session.FilesFound)
	fmt.Printf("- Documents parsed: %d\n", len(session.Reports))
	for _, fr := range session.Reports {
		fmt.Printf("    %s: %d questions, %d valid\n",
			fr.Report.Filename, fr.Report.TotalQuestions, fr.Report.ValidQuestions)
	}
	fmt.Printf("- Questions extracted: %d\n", session.TotalQuestions())
	fmt.Printf("- Valid questions: %d\n", session.ValidQuestions())
	if n := session.Issues.MissingAnswers + session.Issues.BrokenChoices + session.Issues.Duplicates; n > 0 {
		fmt.Printf("- Issues: %d missing answers, %d broken choices, %d duplicates\n",
			session.Issues.MissingAnswers, session.Issues.BrokenChoices, session.Issues.Duplicates)
	}
	if len(session.Hints) > 0 {
		fmt.Printf("- Near-duplicate hints: %d\n", len(session.Hints))
	}
	fmt.Printf("- Review workbook: %s\n", *out)
	if result != nil {
		fmt.Printf("- Questions imported: %d\n", result.Imported)
		fmt.Printf("- Questions skipped: %d\n", result.Skipped)
		fmt.Printf("- Questions in database: %d\n", result.TotalInDB)
	}
}
