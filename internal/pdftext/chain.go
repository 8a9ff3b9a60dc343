package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"examforge/internal/common"
)

// Chain tries each configured provider in order and keeps the first result
// with at least one non-empty page. The pipeline never depends on which
// backend supplied the text.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a provider chain. An empty provider list is a configuration
// error: the ingestion run cannot proceed without a text backend.
func NewChain(logger *slog.Logger, providers ...Provider) (*Chain, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(providers) == 0 {
		return nil, common.NewAppError("CONFIG_ERROR", "no text extraction provider configured", common.ErrUnavailable)
	}
	return &Chain{providers: providers, logger: logger}, nil
}

// DefaultChain wires the standard backend order: MuPDF first, pure-Go fallback.
func DefaultChain(logger *slog.Logger) *Chain {
	c, _ := NewChain(logger, NewFitzProvider(logger), NewPlainProvider(logger))
	return c
}

// ExtractPages runs the chain for one document.
func (c *Chain) ExtractPages(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	var warnings []string
	for _, p := range c.providers {
		pages, err := p.ExtractPages(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			c.logger.Warn("pdftext.provider_failed", "provider", p.Name(), "path", path, "error", err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", p.Name(), err))
			continue
		}
		if !hasText(pages) {
			c.logger.Warn("pdftext.provider_empty", "provider", p.Name(), "path", path)
			warnings = append(warnings, fmt.Sprintf("%s: no text extracted", p.Name()))
			continue
		}
		c.logger.Info("pdftext.extract.ok",
			"provider", p.Name(), "path", path, "pages", len(pages),
			"duration_ms", time.Since(start).Milliseconds())
		return Result{
			Pages:    pages,
			Method:   p.Name(),
			Duration: time.Since(start),
			Warnings: warnings,
		}, nil
	}
	return Result{Warnings: warnings}, fmt.Errorf("all providers failed: %w", common.ErrUnavailable)
}

func hasText(pages map[int]string) bool {
	for _, t := range pages {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
