// Package dom implements sitesearch.View as an in-memory model of the search
// page regions. The model renders to HTML with html/template.
package dom

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/fwojciec/sitesearch"
)

// Ensure View implements sitesearch.View at compile time.
var _ sitesearch.View = (*View)(nil)

// IDs names the five element ids the widget binds to.
type IDs struct {
	Listing   string
	Search    string
	Input     string
	Indicator string
	Results   string
}

// DefaultIDs returns the element ids used by the cookbook page templates.
func DefaultIDs() IDs {
	return IDs{
		Listing:   "recipes",
		Search:    "search",
		Input:     "search_input",
		Indicator: "searching_indicator",
		Results:   "search_results",
	}
}

// HiddenClass is the class applied to hidden regions.
const HiddenClass = "hidden"

var resultTemplate = template.Must(template.New("result").Parse(
	`<h4 class="search-result"><a href="./{{.Link}}">{{.Title}}</a></h4>`,
))

var pageTemplate = template.Must(template.New("page").Parse(
	`<div id="{{.IDs.Listing}}" class="{{.ListingClass}}"></div>
<input id="{{.IDs.Input}}" type="search"{{if .Placeholder}} placeholder="{{.Placeholder}}"{{end}}{{if .Focused}} autofocus{{end}}{{if .Disabled}} disabled{{end}}>
<div id="{{.IDs.Search}}" class="{{.SearchClass}}">
<div id="{{.IDs.Indicator}}" class="{{.IndicatorClass}}">Searching…</div>
<div id="{{.IDs.Results}}">{{.Results}}</div>
</div>
`,
))

// Option configures a View.
type Option func(*View)

// WithIDs overrides the element ids.
func WithIDs(ids IDs) Option {
	return func(v *View) {
		v.ids = ids
	}
}

// WithOnRender registers a hook called with the rendered results fragment
// after every RenderResults call.
func WithOnRender(fn func(fragment string)) Option {
	return func(v *View) {
		v.onRender = fn
	}
}

// View models the search page. It starts in the default state: listing
// visible, search panel hidden, indicator visible. Safe for concurrent use.
type View struct {
	ids      IDs
	onRender func(fragment string)

	visibility sitesearch.Visibility

	mu          sync.Mutex
	results     template.HTML
	entries     []sitesearch.ResultEntry
	focused     bool
	placeholder string
	disabled    bool
}

// NewView creates a new View.
func NewView(opts ...Option) *View {
	v := &View{ids: DefaultIDs()}
	for _, opt := range opts {
		opt(v)
	}
	v.visibility.Hide(sitesearch.RegionSearch)
	return v
}

// Show makes r visible. Showing a visible region is a no-op.
func (v *View) Show(r sitesearch.Region) {
	v.visibility.Show(r)
}

// Hide hides r. Hiding a hidden region is a no-op.
func (v *View) Hide(r sitesearch.Region) {
	v.visibility.Hide(r)
}

// Hidden reports whether r is hidden.
func (v *View) Hidden(r sitesearch.Region) bool {
	return v.visibility.Hidden(r)
}

// RenderResults replaces the results region with one entry per result.
func (v *View) RenderResults(entries []sitesearch.ResultEntry) {
	var buf bytes.Buffer
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte('\n')
		}
		// Template input is fixed; execution cannot fail on a bytes.Buffer.
		_ = resultTemplate.Execute(&buf, e)
	}
	fragment := buf.String()

	v.mu.Lock()
	v.results = template.HTML(fragment)
	v.entries = append([]sitesearch.ResultEntry(nil), entries...)
	hook := v.onRender
	v.mu.Unlock()

	if hook != nil {
		hook(fragment)
	}
}

// Results returns the entries of the last render.
func (v *View) Results() []sitesearch.ResultEntry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]sitesearch.ResultEntry(nil), v.entries...)
}

// ResultsHTML returns the rendered results fragment.
func (v *View) ResultsHTML() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return string(v.results)
}

// FocusInput marks the input as focused.
func (v *View) FocusInput() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focused = true
}

// Focused reports whether the input has focus.
func (v *View) Focused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focused
}

// Unavailable disables the input and shows reason as its placeholder.
func (v *View) Unavailable(reason string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.placeholder = reason
	v.disabled = true
}

// HTML renders the full search fragment.
func (v *View) HTML() (string, error) {
	v.mu.Lock()
	data := struct {
		IDs            IDs
		ListingClass   string
		SearchClass    string
		IndicatorClass string
		Placeholder    string
		Focused        bool
		Disabled       bool
		Results        template.HTML
	}{
		IDs:            v.ids,
		ListingClass:   v.class(sitesearch.RegionListing),
		SearchClass:    v.class(sitesearch.RegionSearch),
		IndicatorClass: v.class(sitesearch.RegionIndicator),
		Placeholder:    v.placeholder,
		Focused:        v.focused,
		Disabled:       v.disabled,
		Results:        v.results,
	}
	v.mu.Unlock()

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (v *View) class(r sitesearch.Region) string {
	if v.visibility.Hidden(r) {
		return HiddenClass
	}
	return ""
}
