package pdftext

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examforge/internal/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeProvider struct {
	name  string
	pages map[int]string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) ExtractPages(_ context.Context, _ string) (map[int]string, error) {
	p.calls++
	return p.pages, p.err
}

func TestChainUsesFirstProviderWithText(t *testing.T) {
	first := &fakeProvider{name: "first", pages: map[int]string{1: "Q1\ntext"}}
	second := &fakeProvider{name: "second", pages: map[int]string{1: "other"}}
	chain, err := NewChain(discardLogger(), first, second)
	require.NoError(t, err)

	res, err := chain.ExtractPages(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "first", res.Method)
	assert.Equal(t, "Q1\ntext", res.Pages[1])
	assert.Empty(t, res.Warnings)
	assert.Zero(t, second.calls)
}

func TestChainFallsBackOnProviderError(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("corrupt xref")}
	second := &fakeProvider{name: "second", pages: map[int]string{1: "recovered"}}
	chain, err := NewChain(discardLogger(), first, second)
	require.NoError(t, err)

	res, err := chain.ExtractPages(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "second", res.Method)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "first")
	assert.Contains(t, res.Warnings[0], "corrupt xref")
}

func TestChainFallsBackOnEmptyPages(t *testing.T) {
	first := &fakeProvider{name: "first", pages: map[int]string{1: "  \n\t"}}
	second := &fakeProvider{name: "second", pages: map[int]string{1: "Q1\ntext"}}
	chain, err := NewChain(discardLogger(), first, second)
	require.NoError(t, err)

	res, err := chain.ExtractPages(context.Background(), "scanned.pdf")
	require.NoError(t, err)
	assert.Equal(t, "second", res.Method)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no text extracted")
}

func TestChainAllProvidersExhausted(t *testing.T) {
	first := &fakeProvider{name: "first", err: errors.New("boom")}
	second := &fakeProvider{name: "second", pages: map[int]string{}}
	chain, err := NewChain(discardLogger(), first, second)
	require.NoError(t, err)

	res, err := chain.ExtractPages(context.Background(), "doc.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnavailable)
	assert.Len(t, res.Warnings, 2)
}

func TestChainRequiresProviders(t *testing.T) {
	_, err := NewChain(discardLogger())
	require.Error(t, err)
}

func TestChainStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := &fakeProvider{name: "first", err: errors.New("interrupted")}
	second := &fakeProvider{name: "second", pages: map[int]string{1: "text"}}
	chain, err := NewChain(discardLogger(), first, second)
	require.NoError(t, err)

	_, err = chain.ExtractPages(ctx, "doc.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, second.calls)
}
