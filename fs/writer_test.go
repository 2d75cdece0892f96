package fs_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteArtifact(t *testing.T) {
	t.Parallel()

	t.Run("writes artifact and titles", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "public")
		w := fs.NewWriter(dir)
		artifact := sitesearch.NewArtifact([]*sitesearch.Document{
			{ID: "recipes/a/index.html", Title: "A", Contents: "alpha"},
		})
		titles := sitesearch.TitleMap{"recipes/a/index.html": "A"}

		n, err := w.WriteArtifact(artifact, titles)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, sitesearch.ArtifactName))
		require.NoError(t, err)
		assert.Equal(t, len(data), n)

		var got sitesearch.Artifact
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sitesearch.ArtifactVersion, got.Version)
		require.Len(t, got.Documents, 1)
		assert.Equal(t, "alpha", got.Documents[0].Contents)

		data, err = os.ReadFile(filepath.Join(dir, sitesearch.TitlesName))
		require.NoError(t, err)
		var gotTitles sitesearch.TitleMap
		require.NoError(t, json.Unmarshal(data, &gotTitles))
		assert.Equal(t, titles, gotTitles)
	})

	t.Run("replaces existing files", func(t *testing.T) {
		t.Parallel()

		// Given: a previously written index
		dir := t.TempDir()
		w := fs.NewWriter(dir)
		_, err := w.WriteArtifact(sitesearch.NewArtifact([]*sitesearch.Document{
			{ID: "old.html", Title: "Old"},
		}), sitesearch.TitleMap{"old.html": "Old"})
		require.NoError(t, err)

		// When: writing a new one
		_, err = w.WriteArtifact(sitesearch.NewArtifact([]*sitesearch.Document{
			{ID: "new.html", Title: "New"},
		}), sitesearch.TitleMap{"new.html": "New"})
		require.NoError(t, err)

		// Then: only the new documents remain
		data, err := os.ReadFile(w.ArtifactPath())
		require.NoError(t, err)
		var got sitesearch.Artifact
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got.Documents, 1)
		assert.Equal(t, "new.html", got.Documents[0].ID)
	})

	t.Run("rejects nil artifact", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		_, err := w.WriteArtifact(nil, nil)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		_, err := w.WriteArtifact(sitesearch.NewArtifact([]*sitesearch.Document{{Title: "no id"}}), nil)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))

		_, statErr := os.Stat(w.ArtifactPath())
		assert.True(t, os.IsNotExist(statErr))
	})
}
