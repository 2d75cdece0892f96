package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.SourceParser = (*SourceParser)(nil)

// SourceParser is a mock implementation of sitesearch.SourceParser.
type SourceParser struct {
	ParseFn func(ctx context.Context, content []byte) (*sitesearch.Document, error)
}

func (p *SourceParser) Parse(ctx context.Context, content []byte) (*sitesearch.Document, error) {
	return p.ParseFn(ctx, content)
}
