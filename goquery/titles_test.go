package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitleMap(t *testing.T) {
	t.Parallel()

	t.Run("reads inline title map", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/json" id="search-titles">{"recipes/a/index.html":"Title A","recipes/b/index.html":"Title B"}</script>
</head><body></body></html>`

		titles, err := goquery.ExtractTitleMap(html)

		require.NoError(t, err)
		assert.Equal(t, sitesearch.TitleMap{
			"recipes/a/index.html": "Title A",
			"recipes/b/index.html": "Title B",
		}, titles)
	})

	t.Run("missing script yields empty map", func(t *testing.T) {
		t.Parallel()

		titles, err := goquery.ExtractTitleMap("<html><body><p>no data</p></body></html>")

		require.NoError(t, err)
		assert.Empty(t, titles)
		assert.NotNil(t, titles)
	})

	t.Run("malformed JSON is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractTitleMap(`<script type="application/json" id="search-titles">{broken</script>`)

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}

func TestTitlesScript(t *testing.T) {
	t.Parallel()

	t.Run("round trips through ExtractTitleMap", func(t *testing.T) {
		t.Parallel()

		want := sitesearch.TitleMap{"recipes/a/index.html": "Title A"}

		script, err := goquery.TitlesScript(want)
		require.NoError(t, err)
		got, err := goquery.ExtractTitleMap("<html><head>" + script + "</head></html>")
		require.NoError(t, err)

		assert.Equal(t, want, got)
	})

	t.Run("escapes closing tags in titles", func(t *testing.T) {
		t.Parallel()

		want := sitesearch.TitleMap{"x": "</script><b>bold</b>"}

		script, err := goquery.TitlesScript(want)
		require.NoError(t, err)
		got, err := goquery.ExtractTitleMap("<html><head>" + script + "</head></html>")
		require.NoError(t, err)

		assert.NotContains(t, script, "</script><b>")
		assert.Equal(t, want, got)
	})
}
