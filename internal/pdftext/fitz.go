package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

// FitzProvider extracts text with MuPDF. Layout-aware, the primary backend.
type FitzProvider struct {
	logger *slog.Logger
}

func NewFitzProvider(logger *slog.Logger) *FitzProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FitzProvider{logger: logger}
}

func (p *FitzProvider) Name() string { return "mupdf" }

func (p *FitzProvider) ExtractPages(ctx context.Context, path string) (map[int]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := make(map[int]string, doc.NumPage())
	nonEmpty := 0
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			p.logger.Warn("pdftext.mupdf.page_failed", "path", path, "page", i+1, "error", err)
			pages[i+1] = ""
			continue
		}
		pages[i+1] = text
		if text != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, errors.New("no text extracted")
	}
	return pages, nil
}
