// Package bleve implements sitesearch.IndexLoader and sitesearch.Index on
// top of an in-memory Bleve index built from the search index artifact.
package bleve

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
)

// Ensure Loader implements sitesearch.IndexLoader at compile time.
var _ sitesearch.IndexLoader = (*Loader)(nil)

// Ensure Index implements sitesearch.Index at compile time.
var _ sitesearch.Index = (*Index)(nil)

// Loader builds Bleve indexes from serialized artifacts. Loaded indexes are
// cached by a fingerprint of the artifact bytes, so loading the same
// artifact twice returns the same Index. Closing an Index evicts it, so a
// later Load builds a fresh one.
type Loader struct {
	mu    sync.Mutex
	cache map[uint64]*Index
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[uint64]*Index)}
}

// Load decodes data as a sitesearch.Artifact and indexes its documents.
func (l *Loader) Load(data []byte) (sitesearch.Index, error) {
	fp := xxhash.Sum64(data)

	l.mu.Lock()
	defer l.mu.Unlock()

	if idx, ok := l.cache[fp]; ok {
		return idx, nil
	}

	var artifact sitesearch.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "malformed search index: %v", err)
	}

	idx, err := Build(&artifact)
	if err != nil {
		return nil, err
	}
	idx.onClose = func() { l.evict(fp, idx) }
	l.cache[fp] = idx
	return idx, nil
}

func (l *Loader) evict(fp uint64, idx *Index) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache[fp] == idx {
		delete(l.cache, fp)
	}
}

// Index is a queryable in-memory Bleve index.
type Index struct {
	index   bleve.Index
	fields  []sitesearch.Field
	size    int
	onClose func()
}

// Build indexes the documents of artifact.
func Build(artifact *sitesearch.Artifact) (*Index, error) {
	if artifact.Version != sitesearch.ArtifactVersion {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "unsupported search index version %d", artifact.Version)
	}

	fields := artifact.Fields
	if len(fields) == 0 {
		fields = sitesearch.DefaultFields()
	}

	docMapping := bleve.NewDocumentStaticMapping()
	for _, f := range fields {
		switch f.Name {
		case sitesearch.FieldTitle, sitesearch.FieldContents:
		case "":
			return nil, sitesearch.Errorf(sitesearch.EINVALID, "search index field name required")
		default:
			return nil, sitesearch.Errorf(sitesearch.EINVALID, "unsupported search index field %q", f.Name)
		}
		fm := bleve.NewTextFieldMapping()
		fm.Store = false
		fm.IncludeTermVectors = false
		docMapping.AddFieldMappingsAt(f.Name, fm)
	}
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}

	batch := idx.NewBatch()
	for _, doc := range artifact.Documents {
		if doc == nil {
			continue
		}
		if err := doc.Validate(); err != nil {
			_ = idx.Close()
			return nil, err
		}
		if err := batch.Index(doc.ID, fieldValues(doc, fields)); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index document %s: %w", doc.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("index batch: %w", err)
	}

	count, err := idx.DocCount()
	if err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("count documents: %w", err)
	}

	return &Index{index: idx, fields: fields, size: int(count)}, nil
}

func fieldValues(doc *sitesearch.Document, fields []sitesearch.Field) map[string]any {
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f.Name {
		case sitesearch.FieldTitle:
			values[f.Name] = doc.Title
		case sitesearch.FieldContents:
			values[f.Name] = doc.Contents
		}
	}
	return values
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	return i.size
}

// Search returns every document matching term, ordered by score DESC then
// identifier ASC. Each field is queried with the full term and with a
// prefix query per token, boosted by the field weight.
func (i *Index) Search(term string) ([]sitesearch.Match, error) {
	tokens := strings.Fields(strings.ToLower(term))
	if len(tokens) == 0 || i.size == 0 {
		return nil, nil
	}

	var clauses []query.Query
	for _, f := range i.fields {
		boost := f.Boost
		if boost <= 0 {
			boost = 1
		}

		match := bleve.NewMatchQuery(term)
		match.SetField(f.Name)
		match.SetBoost(boost)
		clauses = append(clauses, match)

		for _, tok := range tokens {
			prefix := bleve.NewPrefixQuery(tok)
			prefix.SetField(f.Name)
			prefix.SetBoost(boost)
			clauses = append(clauses, prefix)
		}
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(clauses...), i.size, 0, false)
	req.SortBy([]string{"-_score", "_id"})

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	matches := make([]sitesearch.Match, 0, len(res.Hits))
	for _, hit := range res.Hits {
		matches = append(matches, sitesearch.Match{Ref: hit.ID, Score: hit.Score})
	}
	return matches, nil
}

// Close releases the underlying index and evicts it from its Loader.
func (i *Index) Close() error {
	if i.onClose != nil {
		i.onClose()
	}
	return i.index.Close()
}
