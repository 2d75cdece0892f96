package widget_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/bleve"
	"github.com/fwojciec/sitesearch/dom"
	"github.com/fwojciec/sitesearch/mock"
	"github.com/fwojciec/sitesearch/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidget_EndToEnd(t *testing.T) {
	t.Parallel()

	docs := []*sitesearch.Document{
		{ID: "A", Title: "Title A", Contents: "alpha"},
		{ID: "B", Title: "Title B", Contents: "beta"},
	}
	data, err := json.Marshal(sitesearch.NewArtifact(docs))
	require.NoError(t, err)

	clock := &mock.Clock{}
	view := dom.NewView()
	w := widget.New(widget.Options{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return string(data), nil
			},
		},
		Loader: bleve.NewLoader(),
		View:   view,
		Titles: sitesearch.NewTitleMap(docs),
		Clock:  clock,
	})
	require.NoError(t, w.Load(context.Background()))

	type keystroke struct {
		value string
		after time.Duration
	}
	typeText := func(strokes ...keystroke) {
		for _, k := range strokes {
			w.Input(k.value)
			clock.Advance(k.after)
		}
	}

	typeText(keystroke{"t", 20 * time.Millisecond}, keystroke{"ti", 20 * time.Millisecond}, keystroke{"tit", widget.DefaultDebounce})

	assert.Equal(t, widget.ViewSearching, w.State())
	assert.True(t, view.Hidden(sitesearch.RegionListing))
	assert.True(t, view.Hidden(sitesearch.RegionIndicator))
	results := view.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "Title A", results[0].Title)
	assert.Equal(t, "Title B", results[1].Title)

	w.Input("")
	clock.Advance(widget.DefaultDebounce)

	assert.Equal(t, widget.ViewDefault, w.State())
	assert.False(t, view.Hidden(sitesearch.RegionListing))
	assert.True(t, view.Hidden(sitesearch.RegionSearch))
	assert.False(t, view.Hidden(sitesearch.RegionIndicator))
	assert.Empty(t, view.Results())

	w.Input("xyz")
	clock.Advance(widget.DefaultDebounce)

	assert.Equal(t, widget.ViewSearching, w.State())
	assert.Empty(t, view.Results())
	assert.Empty(t, view.ResultsHTML())
}
