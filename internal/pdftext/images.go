package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sort"

	_ "image/jpeg"
	_ "image/png"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DocumentImages reads embedded raster images from one document.
// The document is parsed once at open; page lookups reuse the parsed context.
type DocumentImages struct {
	ctx    *model.Context
	logger *slog.Logger
}

// OpenImages parses the document for image extraction.
func OpenImages(path string, logger *slog.Logger) (*DocumentImages, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &DocumentImages{ctx: pctx, logger: logger}, nil
}

// PageCount returns the number of physical pages.
func (d *DocumentImages) PageCount() int {
	return d.ctx.PageCount
}

// PageImages returns the embedded raster images of one page, ordered by
// object number so repeated runs see the same sequence.
func (d *DocumentImages) PageImages(ctx context.Context, pageNr int) ([]PageImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, nil
	}

	extracted, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("extract page %d images: %w", pageNr, err)
	}

	objNrs := make([]int, 0, len(extracted))
	for nr := range extracted {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	images := make([]PageImage, 0, len(extracted))
	for _, nr := range objNrs {
		img := extracted[nr]
		data, err := readAll(img)
		if err != nil {
			d.logger.Warn("pdftext.images.read_failed", "page", pageNr, "obj", nr, "error", err)
			continue
		}
		pi := PageImage{Data: data, Format: img.FileType}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			pi.Width = cfg.Width
			pi.Height = cfg.Height
		}
		images = append(images, pi)
	}
	return images, nil
}

func readAll(img model.Image) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
