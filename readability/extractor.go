// Package readability isolates the main content of rendered pages using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/sitesearch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitesearch.Extractor at compile time.
var _ sitesearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*sitesearch.Extraction, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "readability: %v", err)
	}

	return &sitesearch.Extraction{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
