package sitesearch

// Extraction holds the main content of a rendered page.
type Extraction struct {
	// Title is the page title found in metadata, if any.
	Title string

	// ContentHTML is the page body with site chrome (navigation, footers,
	// sidebars) removed.
	ContentHTML string
}

// Extractor isolates the main content of a rendered page so that only the
// recipe body is indexed.
type Extractor interface {
	Extract(html string) (*Extraction, error)
}
