// Package fs provides file-based storage for the search index artifact and
// a Fetcher over a local site directory.
package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitesearch"
	"github.com/natefinch/atomic"
)

// Writer writes the artifact and title map into a site output directory.
// Each file is replaced atomically, so a site being served never exposes a
// partially written index.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// ArtifactPath returns the path the artifact is written to.
func (w *Writer) ArtifactPath() string {
	return filepath.Join(w.baseDir, sitesearch.ArtifactName)
}

// TitlesPath returns the path the title map is written to.
func (w *Writer) TitlesPath() string {
	return filepath.Join(w.baseDir, sitesearch.TitlesName)
}

// WriteArtifact writes artifact and titles, returning the artifact size in bytes.
func (w *Writer) WriteArtifact(artifact *sitesearch.Artifact, titles sitesearch.TitleMap) (int, error) {
	if artifact == nil {
		return 0, sitesearch.Errorf(sitesearch.EINVALID, "artifact required")
	}
	for _, doc := range artifact.Documents {
		if err := doc.Validate(); err != nil {
			return 0, err
		}
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return 0, err
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal search index: %w", err)
	}
	if err := atomic.WriteFile(w.ArtifactPath(), bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("failed to write search index: %w", err)
	}

	titleData, err := json.MarshalIndent(titles, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal titles: %w", err)
	}
	if err := atomic.WriteFile(w.TitlesPath(), bytes.NewReader(titleData)); err != nil {
		return 0, fmt.Errorf("failed to write titles: %w", err)
	}

	return len(data), nil
}
