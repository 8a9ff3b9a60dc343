package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks a document directory and reports which files still need
// importing. A nil Ledger treats every file as new.
type Scanner struct {
	Ledger Ledger
	Logger *slog.Logger
}

func NewScanner(ledger Ledger, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{Ledger: ledger, Logger: logger}
}

// HashFile returns the hex SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ScanDir walks root, skips hidden entries if requested, and reports every
// allowed document together with its ledger state. Per-file failures are
// recorded on the result and do not stop the walk.
func (s *Scanner) ScanDir(ctx context.Context, root string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		res, err := s.scanFile(ctx, path, d)
		if err != nil {
			s.Logger.Warn("ingest.file_failed", "path", path, "error", err)
			results = append(results, FileResult{Path: path, Filename: filepath.Base(path), Err: err.Error()})
			stats.Failed++
			return nil
		}
		if !res.New {
			stats.Skipped++
		}
		results = append(results, res)
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	s.Logger.Info("ingest.scan.ok",
		"root", root,
		"matched", stats.Matched,
		"skipped", stats.Skipped,
		"failed", stats.Failed)
	return results, stats, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string, d fs.DirEntry) (FileResult, error) {
	hashHex, err := HashFile(path)
	if err != nil {
		return FileResult{}, err
	}
	res := FileResult{
		Path:     path,
		Filename: filepath.Base(path),
		HashHex:  hashHex,
		New:      true,
	}
	if info, err := d.Info(); err == nil {
		res.Size = info.Size()
	}
	if s.Ledger != nil {
		done, err := s.Ledger.Completed(ctx, res.Filename, hashHex)
		if err != nil {
			return FileResult{}, fmt.Errorf("ledger lookup: %w", err)
		}
		res.New = !done
	}
	return res, nil
}
