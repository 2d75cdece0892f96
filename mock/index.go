package mock

import "github.com/fwojciec/sitesearch"

var _ sitesearch.Index = (*Index)(nil)

// Index is a mock implementation of sitesearch.Index.
type Index struct {
	SearchFn func(term string) ([]sitesearch.Match, error)
}

func (i *Index) Search(term string) ([]sitesearch.Match, error) {
	return i.SearchFn(term)
}

var _ sitesearch.IndexLoader = (*IndexLoader)(nil)

// IndexLoader is a mock implementation of sitesearch.IndexLoader.
type IndexLoader struct {
	LoadFn func(data []byte) (sitesearch.Index, error)
}

func (l *IndexLoader) Load(data []byte) (sitesearch.Index, error) {
	return l.LoadFn(data)
}
