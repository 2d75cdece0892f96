package sitesearch

import (
	"context"
	"strings"
)

// Document represents one indexed page of the site.
type Document struct {
	// ID is the stable document identifier, e.g. "recipes/foo/index.html".
	// It is both the index ref and the key into the TitleMap.
	ID       string `json:"id"`
	Title    string `json:"title"`
	Contents string `json:"contents"`

	// Level is the difficulty level from front matter. Not serialized into
	// the artifact; it only orders documents at build time.
	Level string `json:"-"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	return nil
}

// Known difficulty levels, in listing order.
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// LevelRank returns the sort rank of a level. Unknown or empty levels sort
// after all known ones.
func LevelRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelBasic:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return 4
	}
}

// CompareDocuments orders documents by level, then title.
func CompareDocuments(a, b *Document) int {
	if c := LevelRank(a.Level) - LevelRank(b.Level); c != 0 {
		return c
	}
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// TitleMap maps document identifiers to display titles. It is delivered
// inline with the page and is read-only to the search widget.
type TitleMap map[string]string

// Title returns the title for id, or "" if the map has no entry.
func (m TitleMap) Title(id string) string {
	if m == nil {
		return ""
	}
	return m[id]
}

// NewTitleMap builds a TitleMap from documents.
func NewTitleMap(docs []*Document) TitleMap {
	m := make(TitleMap, len(docs))
	for _, doc := range docs {
		m[doc.ID] = doc.Title
	}
	return m
}

// SourceParser turns one site source file into a Document.
// The returned document has no ID; the caller assigns it.
type SourceParser interface {
	Parse(ctx context.Context, content []byte) (*Document, error)
}
