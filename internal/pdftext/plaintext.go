package pdftext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"
)

// PlainProvider extracts text with a pure-Go reader. Whitespace-tolerant,
// used when the MuPDF backend fails or extracts nothing.
type PlainProvider struct {
	logger *slog.Logger
}

func NewPlainProvider(logger *slog.Logger) *PlainProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlainProvider{logger: logger}
}

func (p *PlainProvider) Name() string { return "plaintext" }

func (p *PlainProvider) ExtractPages(ctx context.Context, path string) (map[int]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make(map[int]string, r.NumPage())
	nonEmpty := 0
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			pages[i] = ""
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Warn("pdftext.plaintext.page_failed", "path", path, "page", i, "error", err)
			pages[i] = ""
			continue
		}
		pages[i] = text
		if text != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, errors.New("no text extracted")
	}
	return pages, nil
}
