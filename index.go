package sitesearch

// ArtifactVersion is the artifact format version written by this module.
const ArtifactVersion = 1

// ArtifactName is the fixed filename of the search index artifact,
// resolved relative to the site root path.
const ArtifactName = "searchIndex.json"

// TitlesName is the filename of the title map written next to the artifact.
const TitlesName = "searchTitles.json"

// Default indexed fields and their weights.
const (
	FieldTitle    = "title"
	FieldContents = "contents"
)

// Field is an indexed document field and its relevance weight.
type Field struct {
	Name  string  `json:"name"`
	Boost float64 `json:"boost"`
}

// DefaultFields returns the field weighting used when an artifact declares none.
func DefaultFields() []Field {
	return []Field{
		{Name: FieldTitle, Boost: 2},
		{Name: FieldContents, Boost: 1},
	}
}

// Artifact is the serialized search index shipped alongside the site.
type Artifact struct {
	Version   int         `json:"version"`
	Ref       string      `json:"ref"`
	Fields    []Field     `json:"fields"`
	Documents []*Document `json:"documents"`
}

// NewArtifact returns an artifact for docs with the default field weighting.
func NewArtifact(docs []*Document) *Artifact {
	return &Artifact{
		Version:   ArtifactVersion,
		Ref:       "id",
		Fields:    DefaultFields(),
		Documents: docs,
	}
}

// Match is one ranked hit returned by an Index.
type Match struct {
	Ref   string
	Score float64
}

// Index is a loaded, queryable full-text index.
type Index interface {
	// Search returns matches for term in relevance order.
	Search(term string) ([]Match, error)
}

// IndexLoader deserializes an artifact into a queryable Index.
type IndexLoader interface {
	Load(data []byte) (Index, error)
}
