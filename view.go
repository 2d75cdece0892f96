package sitesearch

import "sync"

// Region identifies a toggleable area of the search UI.
type Region int

// Toggleable regions. The results container and the text input are
// addressed through RenderResults and FocusInput instead.
const (
	RegionListing   Region = iota // default content shown when not searching
	RegionSearch                  // search results panel
	RegionIndicator               // loading indicator inside the panel
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionListing:
		return "listing"
	case RegionSearch:
		return "search"
	case RegionIndicator:
		return "indicator"
	default:
		return "unknown"
	}
}

// KeySlash is the key code that focuses the search input from anywhere.
const KeySlash = 191

// DefaultLinkSuffix is the suffix carried by every document identifier.
// It is stripped to form a navigable link.
const DefaultLinkSuffix = "index.html"

// ResultEntry is one rendered search result.
type ResultEntry struct {
	DocumentID string
	Title      string
	Link       string
}

// LinkTarget strips the last n bytes from id. Identifiers shorter than n
// produce an empty link.
func LinkTarget(id string, n int) string {
	if n <= 0 {
		return id
	}
	if len(id) <= n {
		return ""
	}
	return id[:len(id)-n]
}

// View is the presentation surface the search widget drives.
type View interface {
	// Show and Hide toggle a region. Both are idempotent.
	Show(r Region)
	Hide(r Region)

	// RenderResults replaces the entire result list. A nil or empty slice
	// clears it.
	RenderResults(entries []ResultEntry)

	// FocusInput moves focus to the search input.
	FocusInput()

	// Unavailable marks search as unusable, e.g. after a failed index load.
	Unavailable(reason string)
}

// Visibility tracks hidden flags per region. It backs the idempotent show
// and hide primitives of View implementations. The zero value has every
// region visible. Safe for concurrent use.
type Visibility struct {
	mu     sync.Mutex
	hidden map[Region]bool
}

// Show clears the hidden flag and reports whether the state changed.
func (v *Visibility) Show(r Region) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.hidden[r] {
		return false
	}
	delete(v.hidden, r)
	return true
}

// Hide sets the hidden flag and reports whether the state changed.
func (v *Visibility) Hide(r Region) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hidden[r] {
		return false
	}
	if v.hidden == nil {
		v.hidden = make(map[Region]bool)
	}
	v.hidden[r] = true
	return true
}

// Hidden reports whether r is hidden.
func (v *Visibility) Hidden(r Region) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hidden[r]
}
