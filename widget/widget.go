// Package widget implements the search UI controller: it loads the search
// index artifact, debounces input, queries the index and drives a View.
package widget

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/sitesearch"
)

// DefaultMinTermLength is the shortest trimmed term that runs a query.
const DefaultMinTermLength = 3

// ViewState is the high-level visibility state of the widget.
type ViewState int

const (
	// ViewDefault shows the listing and hides the search panel.
	ViewDefault ViewState = iota
	// ViewSearching hides the listing and shows the search panel.
	ViewSearching
)

// String returns the state name.
func (s ViewState) String() string {
	if s == ViewSearching {
		return "searching"
	}
	return "default"
}

// Options configures a Widget.
type Options struct {
	// Fetcher retrieves the index artifact. Required.
	Fetcher sitesearch.Fetcher

	// Loader deserializes the artifact into a queryable index. Required.
	Loader sitesearch.IndexLoader

	// View is the surface the widget drives. Required.
	View sitesearch.View

	// Titles maps document identifiers to display titles.
	Titles sitesearch.TitleMap

	// RootPath is the page-relative prefix of the site root, e.g. "../".
	RootPath string

	// ArtifactName defaults to sitesearch.ArtifactName.
	ArtifactName string

	// LinkSuffix is stripped from identifiers to form links.
	// Defaults to sitesearch.DefaultLinkSuffix.
	LinkSuffix string

	// MinTermLength defaults to DefaultMinTermLength.
	MinTermLength int

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// Clock schedules debounced searches. Defaults to the system clock.
	Clock sitesearch.Clock

	// Logger receives load and search failures. Defaults to discarding.
	Logger *slog.Logger
}

// Widget is the search UI controller. Input and key events are inert until
// Load succeeds. Safe for concurrent use; searches are serialized.
type Widget struct {
	fetcher     sitesearch.Fetcher
	loader      sitesearch.IndexLoader
	view        sitesearch.View
	titles      sitesearch.TitleMap
	artifactURL string
	suffixLen   int
	minTermLen  int
	debouncer   *Debouncer
	logger      *slog.Logger

	mu    sync.Mutex
	index sitesearch.Index
	state ViewState
}

// New creates a Widget with the given options.
func New(opts Options) *Widget {
	name := opts.ArtifactName
	if name == "" {
		name = sitesearch.ArtifactName
	}
	suffix := opts.LinkSuffix
	if suffix == "" {
		suffix = sitesearch.DefaultLinkSuffix
	}
	minLen := opts.MinTermLength
	if minLen <= 0 {
		minLen = DefaultMinTermLength
	}
	wait := opts.Debounce
	if wait <= 0 {
		wait = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Widget{
		fetcher:     opts.Fetcher,
		loader:      opts.Loader,
		view:        opts.View,
		titles:      opts.Titles,
		artifactURL: opts.RootPath + name,
		suffixLen:   len(suffix),
		minTermLen:  minLen,
		debouncer:   NewDebouncer(opts.Clock, wait),
		logger:      logger,
	}
}

// ArtifactURL returns the location the widget fetches the index from.
func (w *Widget) ArtifactURL() string {
	return w.artifactURL
}

// Load fetches and deserializes the index artifact. On failure the widget
// stays inert, the view is marked unavailable and an EUNAVAILABLE error is
// returned. Load is not retried.
func (w *Widget) Load(ctx context.Context) error {
	data, err := w.fetcher.Fetch(ctx, w.artifactURL)
	if err != nil {
		return w.unavailable("fetch search index", err)
	}

	idx, err := w.loader.Load([]byte(data))
	if err != nil {
		return w.unavailable("load search index", err)
	}

	w.mu.Lock()
	w.index = idx
	w.mu.Unlock()
	return nil
}

func (w *Widget) unavailable(op string, err error) error {
	w.logger.Error(op, "url", w.artifactURL, "err", err)
	w.view.Unavailable("Search unavailable")
	return sitesearch.Errorf(sitesearch.EUNAVAILABLE, "%s %s: %v", op, w.artifactURL, err)
}

// Ready reports whether the index has been loaded.
func (w *Widget) Ready() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index != nil
}

// State returns the current view state.
func (w *Widget) State() ViewState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Input handles a change of the search box value. The search runs once the
// debounce period passes without further input, using this value.
func (w *Widget) Input(value string) {
	w.mu.Lock()
	idx := w.index
	w.mu.Unlock()
	if idx == nil {
		return
	}

	w.debouncer.Schedule(func() {
		w.PerformSearch(idx, value)
	})
}

// Search runs term immediately against the loaded index, dropping any
// pending debounced search. It is a no-op before Load.
func (w *Widget) Search(term string) {
	w.mu.Lock()
	idx := w.index
	w.mu.Unlock()
	if idx == nil {
		return
	}

	w.debouncer.Cancel()
	w.PerformSearch(idx, term)
}

// Flush runs a pending debounced search now, or waits for one already
// running. It reports whether one ran.
func (w *Widget) Flush() bool {
	return w.debouncer.Flush()
}

// KeyUp handles a global key release. The slash key focuses the input
// immediately, regardless of any pending search.
func (w *Widget) KeyUp(code int) {
	if code != sitesearch.KeySlash || !w.Ready() {
		return
	}
	w.view.FocusInput()
}

// Close cancels any pending search and waits for a running one to finish.
func (w *Widget) Close() error {
	w.debouncer.Cancel()
	w.debouncer.Wait()
	return nil
}

// PerformSearch runs rawTerm against idx and updates the view.
func (w *Widget) PerformSearch(idx sitesearch.Index, rawTerm string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	term := strings.TrimSpace(rawTerm)
	if term == "" {
		w.setState(ViewDefault)
		w.view.Show(sitesearch.RegionIndicator)
		w.view.RenderResults(nil)
		return
	}

	w.setState(ViewSearching)

	if utf8.RuneCountInString(term) < w.minTermLen {
		return
	}

	matches, err := idx.Search(term)
	if err != nil {
		w.logger.Error("search", "term", term, "err", err)
		return
	}
	if len(matches) == 0 {
		return
	}

	entries := make([]sitesearch.ResultEntry, len(matches))
	for i, m := range matches {
		entries[i] = sitesearch.ResultEntry{
			DocumentID: m.Ref,
			Title:      w.titles.Title(m.Ref),
			Link:       sitesearch.LinkTarget(m.Ref, w.suffixLen),
		}
	}

	w.view.Hide(sitesearch.RegionIndicator)
	w.view.RenderResults(entries)
}

// setState applies s to the listing and search regions. Callers hold w.mu.
func (w *Widget) setState(s ViewState) {
	w.state = s
	switch s {
	case ViewDefault:
		w.view.Show(sitesearch.RegionListing)
		w.view.Hide(sitesearch.RegionSearch)
	case ViewSearching:
		w.view.Hide(sitesearch.RegionListing)
		w.view.Show(sitesearch.RegionSearch)
	}
}
