package bleve_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/bleve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func artifactJSON(t *testing.T, docs ...*sitesearch.Document) []byte {
	t.Helper()
	data, err := json.Marshal(sitesearch.NewArtifact(docs))
	require.NoError(t, err)
	return data
}

func refs(matches []sitesearch.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Ref
	}
	return out
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads artifact into queryable index", func(t *testing.T) {
		t.Parallel()

		data := artifactJSON(t,
			&sitesearch.Document{ID: "A", Title: "Title A", Contents: "first page"},
			&sitesearch.Document{ID: "B", Title: "Title B", Contents: "second page"},
		)

		idx, err := bleve.NewLoader().Load(data)
		require.NoError(t, err)

		matches, err := idx.Search("tit")
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, refs(matches))
	})

	t.Run("returns cached index for identical artifact", func(t *testing.T) {
		t.Parallel()

		loader := bleve.NewLoader()
		data := artifactJSON(t, &sitesearch.Document{ID: "A", Title: "Title A"})

		first, err := loader.Load(data)
		require.NoError(t, err)
		second, err := loader.Load(data)
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("builds fresh index after close", func(t *testing.T) {
		t.Parallel()

		loader := bleve.NewLoader()
		data := artifactJSON(t, &sitesearch.Document{ID: "A", Title: "Title A"})

		first, err := loader.Load(data)
		require.NoError(t, err)
		require.NoError(t, first.(*bleve.Index).Close())

		second, err := loader.Load(data)
		require.NoError(t, err)
		t.Cleanup(func() { _ = second.(*bleve.Index).Close() })

		assert.NotSame(t, first, second)
		matches, err := second.Search("title")
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, refs(matches))
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := bleve.NewLoader().Load([]byte(`{"version":1,"ref":"id","fields":[{"name":"body","boost":1}],"documents":[{"id":"A","contents":"text"}]}`))

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
		assert.Contains(t, sitesearch.ErrorMessage(err), "body")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := bleve.NewLoader().Load([]byte("{not json"))

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})

	t.Run("rejects unknown version", func(t *testing.T) {
		t.Parallel()

		_, err := bleve.NewLoader().Load([]byte(`{"version":99,"documents":[]}`))

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
		assert.Contains(t, sitesearch.ErrorMessage(err), "99")
	})

	t.Run("rejects document without ID", func(t *testing.T) {
		t.Parallel()

		_, err := bleve.NewLoader().Load([]byte(`{"version":1,"documents":[{"title":"orphan"}]}`))

		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T, docs ...*sitesearch.Document) *bleve.Index {
		t.Helper()
		idx, err := bleve.Build(sitesearch.NewArtifact(docs))
		require.NoError(t, err)
		t.Cleanup(func() { _ = idx.Close() })
		return idx
	}

	t.Run("title matches outrank contents matches", func(t *testing.T) {
		t.Parallel()

		idx := build(t,
			&sitesearch.Document{ID: "body", Title: "Getting started", Contents: "how to write a selector for buttons"},
			&sitesearch.Document{ID: "title", Title: "Selector strategies", Contents: "tips for reliable tests"},
		)

		matches, err := idx.Search("selector")
		require.NoError(t, err)

		assert.Equal(t, []string{"title", "body"}, refs(matches))
		assert.Greater(t, matches[0].Score, matches[1].Score)
	})

	t.Run("no matches returns empty", func(t *testing.T) {
		t.Parallel()

		idx := build(t, &sitesearch.Document{ID: "A", Title: "Title A"})

		matches, err := idx.Search("xyz")
		require.NoError(t, err)

		assert.Empty(t, matches)
	})

	t.Run("empty term returns nothing", func(t *testing.T) {
		t.Parallel()

		idx := build(t, &sitesearch.Document{ID: "A", Title: "Title A"})

		matches, err := idx.Search("   ")
		require.NoError(t, err)

		assert.Empty(t, matches)
	})

	t.Run("empty index returns nothing", func(t *testing.T) {
		t.Parallel()

		idx := build(t)

		matches, err := idx.Search("anything")
		require.NoError(t, err)

		assert.Empty(t, matches)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("multi-word queries match any token", func(t *testing.T) {
		t.Parallel()

		idx := build(t,
			&sitesearch.Document{ID: "a", Title: "Mocking servers"},
			&sitesearch.Document{ID: "b", Title: "Parallel bots"},
			&sitesearch.Document{ID: "c", Title: "Unrelated"},
		)

		matches, err := idx.Search("mocking bots")
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"a", "b"}, refs(matches))
	})

	t.Run("ties break by identifier", func(t *testing.T) {
		t.Parallel()

		idx := build(t,
			&sitesearch.Document{ID: "z", Title: "Recipe"},
			&sitesearch.Document{ID: "m", Title: "Recipe"},
			&sitesearch.Document{ID: "a", Title: "Recipe"},
		)

		matches, err := idx.Search("recipe")
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "m", "z"}, refs(matches))
	})
}
