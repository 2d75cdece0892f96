package sitesearch

import "context"

// Fetcher retrieves static site resources such as the search index artifact
// and rendered pages.
type Fetcher interface {
	// Fetch returns the body of the resource at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
