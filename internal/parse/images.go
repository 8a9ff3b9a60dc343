package parse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"examforge/internal/pdftext"
)

// Cue phrases meaning the question text refers to a pictured exhibit.
var exhibitCues = []string{
	"following exhibit", "shown in the following", "as shown in",
	"following diagram", "following image", "exhibit", "shown below",
}

// Cue phrases meaning the question expects tabular data, which these
// documents render as an embedded image.
var tableCues = []string{
	"following users", "following resources", "following table",
	"following virtual machines", "following storage accounts",
	"following subscriptions", "contains the following",
	"following information", "following configuration",
	"following azure", "following settings",
}

const (
	minImageBytes     = 5000
	exhibitImageBytes = 10000
)

// Associator links embedded document images to the questions that
// reference them. The source format gives no explicit image-to-question
// linkage, so page proximity plus size and shape filtering is the only
// available signal.
type Associator struct {
	logger *slog.Logger
	dir    string
}

// NewAssociator writes chosen images under dir.
func NewAssociator(dir string, logger *slog.Logger) *Associator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Associator{logger: logger, dir: dir}
}

// Associate walks the question list, finds the physical page holding each
// exhibit-referencing question, and saves the first image on that page (or
// the one before it) that passes the size and shape filters. At most one
// image is linked per question.
func (a *Associator) Associate(ctx context.Context, src pdftext.ImageSource, questions []*Question, pages map[int]string) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		a.logger.Warn("exhibit dir unavailable", "dir", a.dir, "error", err)
		return
	}

	for _, q := range questions {
		lower := strings.ToLower(q.Text)
		if !containsAny(lower, exhibitCues) && !containsAny(lower, tableCues) {
			continue
		}

		pageNr := findQuestionPage(q.Text, pages)
		if pageNr == 0 {
			continue
		}

		images, err := src.PageImages(ctx, pageNr)
		if err != nil {
			a.logger.Warn("page images failed", "page", pageNr, "error", err)
			continue
		}
		if len(images) == 0 && pageNr > 1 {
			if images, err = src.PageImages(ctx, pageNr-1); err != nil {
				a.logger.Warn("page images failed", "page", pageNr-1, "error", err)
				continue
			}
		}

		for idx, img := range images {
			if len(img.Data) < minImageBytes {
				continue
			}

			// Tables come out wide and short, typically 400-800px by
			// 100-300px. True exhibits just need to be sizeable.
			tableLike := img.Width > 300 && img.Height > 50 &&
				float64(img.Width)/float64(max(img.Height, 1)) > 1.5
			exhibit := len(img.Data) >= exhibitImageBytes
			if !tableLike && !exhibit {
				continue
			}

			filename := fmt.Sprintf("q%d_%s_img%d.%s", q.SourcePage, q.StableID()[:8], idx, img.Format)
			if err := os.WriteFile(filepath.Join(a.dir, filename), img.Data, 0o644); err != nil {
				a.logger.Warn("exhibit write failed", "filename", filename, "error", err)
				break
			}

			q.ExhibitImage = "/static/exhibits/" + filename
			kind := "exhibit"
			if tableLike {
				kind = "table"
			}
			a.logger.Info("exhibit extracted",
				"question", q.SourcePage, "filename", filename,
				"kind", kind, "width", img.Width, "height", img.Height,
			)
			break
		}
	}
}

// findQuestionPage locates the physical page containing the question by
// normalized substring search, trying a 200 character prefix and then a
// shorter 100 character fallback. The question's source number is its
// position in the document numbering, not a page number, so this lookup is
// the only page linkage available. Returns 0 when no page matches.
func findQuestionPage(text string, pages map[int]string) int {
	if text == "" {
		return 0
	}

	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	for _, limit := range []int{200, 100} {
		needle := strings.ToLower(whitespaceRe.ReplaceAllString(runePrefix(text, limit), " "))
		for _, n := range nums {
			page := strings.ToLower(whitespaceRe.ReplaceAllString(pages[n], " "))
			if strings.Contains(page, needle) {
				return n
			}
		}
	}
	return 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
