package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sitesearch.Extractor at compile time.
var _ sitesearch.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps recipe content and code", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Recording Sessions | Cookbook</title>
<meta property="og:title" content="Recording Sessions">
</head>
<body>
<nav class="recipes-nav"><a href="../">Recipes</a><a href="../../">Home</a></nav>
<main>
<article>
<h1>Recording Sessions</h1>
<p>Record every request the client makes so the session can be replayed offline later.</p>
<pre><code>recorder.save("session.json")</code></pre>
</article>
</main>
<footer><p>Copyright 2024 Cookbook Authors</p></footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "replayed offline")
		assert.Contains(t, result.ContentHTML, "recorder.save")
		assert.NotContains(t, result.ContentHTML, "recipes-nav")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024 Cookbook Authors")
	})

	t.Run("handles minimal page", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(`<html><body><p>Simple recipe text</p></body></html>`)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple recipe text")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}
