package parse

import (
	"io"
	"log/slog"
	"testing"
)

const seriesPreamble = "Note: This question is part of a series of questions that present the same scenario. " +
	"Each question in the series contains a unique solution. " +
	"After you answer a question in this section, you will NOT be able to return to it. " +
	"As a result, these questions will not appear in the review screen. "

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDetectSeries(t *testing.T) {
	q1 := &Question{Text: seriesPreamble + "You have an Azure subscription named Sub1. Solution: You create a storage account. Does that meet the goal?", SourcePage: 1}
	q2 := &Question{Text: seriesPreamble + "You have an Azure subscription named Sub1. Solution: You create a virtual network. Does that meet the goal?", SourcePage: 2}
	standalone := &Question{Text: "You manage an on-premises cluster with no relation to anything else.", SourcePage: 3}

	DetectSeries([]*Question{q1, q2, standalone}, discardLogger())

	if q1.SeriesID == "" {
		t.Fatal("q1 has no series id")
	}
	if len(q1.SeriesID) != 12 {
		t.Errorf("series id %q, want 12 hex chars", q1.SeriesID)
	}
	if q1.SeriesID != q2.SeriesID {
		t.Errorf("same scenario split into series %q and %q", q1.SeriesID, q2.SeriesID)
	}
	if standalone.SeriesID != "" {
		t.Errorf("standalone question joined series %q", standalone.SeriesID)
	}
}

func TestDetectSeriesImplicitMember(t *testing.T) {
	// Only the first occurrence carries the explicit marker; the second
	// must join purely on scenario content.
	marked := &Question{Text: seriesPreamble + "You have an Azure subscription named Sub1. Solution: You enable soft delete. Does that meet the goal?", SourcePage: 1}
	unmarked := &Question{Text: "You have an Azure subscription named Sub1. What should you do first?", SourcePage: 2}

	DetectSeries([]*Question{marked, unmarked}, discardLogger())

	if marked.SeriesID == "" {
		t.Fatal("marked question has no series id")
	}
	if unmarked.SeriesID != marked.SeriesID {
		t.Errorf("unmarked member got series %q, want %q", unmarked.SeriesID, marked.SeriesID)
	}
}

func TestExtractCoreScenario(t *testing.T) {
	text := seriesPreamble + "You have an Azure subscription named Sub1. Solution: You create a storage account. Does that meet the goal?"
	want := "You have an Azure subscription named Sub1."
	if got := extractCoreScenario(text); got != want {
		t.Errorf("extractCoreScenario() = %q, want %q", got, want)
	}
}

func TestExtractCoreScenarioNormalizesWording(t *testing.T) {
	a := extractCoreScenario("Your company's Azure solution makes use of a single virtual network. What should you recommend?")
	b := extractCoreScenario("Your company uses a single virtual network. What should you recommend?")
	if a != b {
		t.Errorf("wording variants fingerprint differently: %q vs %q", a, b)
	}
}
