package parse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"examforge/internal/pdftext"
)

type fakeImageSource struct {
	pages map[int][]pdftext.PageImage
	err   error
}

func (f *fakeImageSource) PageImages(_ context.Context, pageNr int) ([]pdftext.PageImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[pageNr], nil
}

func TestFindQuestionPage(t *testing.T) {
	pages := map[int]string{
		1: "Introductory material about the exam.",
		2: "You have   the following\nexhibit described here in detail.",
		3: "Closing notes and references.",
	}

	got := findQuestionPage("You have the following exhibit described here in detail.", pages)
	if got != 2 {
		t.Errorf("findQuestionPage() = %d, want 2", got)
	}

	if got := findQuestionPage("Text that appears on no page at all.", pages); got != 0 {
		t.Errorf("findQuestionPage() = %d, want 0 for unknown text", got)
	}

	if got := findQuestionPage("", pages); got != 0 {
		t.Errorf("findQuestionPage(\"\") = %d, want 0", got)
	}
}

func TestAssociateExhibit(t *testing.T) {
	dir := t.TempDir()
	q := &Question{
		Text:       "You review the following exhibit before answering.",
		SourcePage: 3,
	}
	pages := map[int]string{
		1: "You review the following exhibit before answering. More page text.",
	}
	src := &fakeImageSource{pages: map[int][]pdftext.PageImage{
		1: {{Data: bytes.Repeat([]byte{0xAB}, 12000), Format: "png", Width: 200, Height: 400}},
	}}

	a := NewAssociator(dir, discardLogger())
	a.Associate(context.Background(), src, []*Question{q}, pages)

	wantName := fmt.Sprintf("q3_%s_img0.png", q.StableID()[:8])
	if q.ExhibitImage != "/static/exhibits/"+wantName {
		t.Fatalf("ExhibitImage = %q, want %q", q.ExhibitImage, "/static/exhibits/"+wantName)
	}
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("exhibit file not written: %v", err)
	}
	if len(data) != 12000 {
		t.Errorf("exhibit file has %d bytes, want 12000", len(data))
	}
}

func TestAssociateTableImage(t *testing.T) {
	dir := t.TempDir()
	q := &Question{
		Text:       "Your tenant contains the following users listed for review.",
		SourcePage: 9,
	}
	pages := map[int]string{
		4: "Your tenant contains the following users listed for review. User1 User2.",
	}
	// 6KB is below the exhibit threshold but the wide short shape
	// qualifies it as a rendered table.
	src := &fakeImageSource{pages: map[int][]pdftext.PageImage{
		4: {{Data: bytes.Repeat([]byte{0x01}, 6000), Format: "jpg", Width: 600, Height: 150}},
	}}

	a := NewAssociator(dir, discardLogger())
	a.Associate(context.Background(), src, []*Question{q}, pages)

	if q.ExhibitImage == "" {
		t.Fatal("table image was not associated")
	}
}

func TestAssociateSkipsSmallImages(t *testing.T) {
	dir := t.TempDir()
	q := &Question{
		Text:       "You review the following exhibit before answering.",
		SourcePage: 1,
	}
	pages := map[int]string{
		1: "You review the following exhibit before answering.",
	}
	src := &fakeImageSource{pages: map[int][]pdftext.PageImage{
		1: {{Data: bytes.Repeat([]byte{0x01}, 3000), Format: "png", Width: 900, Height: 900}},
	}}

	a := NewAssociator(dir, discardLogger())
	a.Associate(context.Background(), src, []*Question{q}, pages)

	if q.ExhibitImage != "" {
		t.Errorf("icon sized image was associated: %q", q.ExhibitImage)
	}
}

func TestAssociatePreviousPageFallback(t *testing.T) {
	dir := t.TempDir()
	q := &Question{
		Text:       "Refer to the following diagram when choosing your answer.",
		SourcePage: 2,
	}
	pages := map[int]string{
		1: "Unrelated first page content.",
		2: "Refer to the following diagram when choosing your answer.",
	}
	src := &fakeImageSource{pages: map[int][]pdftext.PageImage{
		1: {{Data: bytes.Repeat([]byte{0x02}, 15000), Format: "png", Width: 500, Height: 500}},
		2: {},
	}}

	a := NewAssociator(dir, discardLogger())
	a.Associate(context.Background(), src, []*Question{q}, pages)

	if q.ExhibitImage == "" {
		t.Fatal("exhibit on previous page was not associated")
	}
}

func TestAssociateIgnoresQuestionsWithoutCues(t *testing.T) {
	dir := t.TempDir()
	q := &Question{
		Text:       "You need to create a resource group. What should you use?",
		SourcePage: 1,
	}
	pages := map[int]string{1: "You need to create a resource group. What should you use?"}
	src := &fakeImageSource{err: errors.New("should never be called")}

	a := NewAssociator(dir, discardLogger())
	a.Associate(context.Background(), src, []*Question{q}, pages)

	if q.ExhibitImage != "" {
		t.Errorf("question without cue got image %q", q.ExhibitImage)
	}
}
