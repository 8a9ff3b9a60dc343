package pdftext

import (
	"context"
	"time"
)

// Provider converts a document into page-indexed raw text.
// Page numbers are 1-based physical pages.
type Provider interface {
	Name() string
	ExtractPages(ctx context.Context, path string) (map[int]string, error)
}

// Result is the outcome of text extraction for one document.
type Result struct {
	Pages    map[int]string
	Method   string // name of the provider that supplied the text
	Duration time.Duration
	Warnings []string
}

// PageImage is one embedded raster image found on a page.
type PageImage struct {
	Data   []byte
	Format string // "png" | "jpg" | ...
	Width  int
	Height int
}

// ImageSource lists embedded raster images for a physical page.
type ImageSource interface {
	PageImages(ctx context.Context, pageNr int) ([]PageImage, error)
}
