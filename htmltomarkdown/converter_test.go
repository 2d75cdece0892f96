package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements sitesearch.Converter at compile time.
var _ sitesearch.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts recipe body", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Setup</h2><p>Install the <strong>bot</strong> runner.</p><ul><li>one</li><li>two</li></ul>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Setup")
		assert.Contains(t, md, "**bot**")
		assert.Contains(t, md, "- one")
		assert.Contains(t, md, "- two")
	})

	t.Run("converts rendered search results", func(t *testing.T) {
		t.Parallel()

		html := `<h4 class="search-result"><a href="./recipes/a/">Title A</a></h4>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Title A](./recipes/a/)")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		html := `<p><a href="/recipes/a/">Title A</a></p>`

		md, err := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://cookbook.example.com")).Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Title A](https://cookbook.example.com/recipes/a/)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>Level</th></tr></thead><tbody><tr><td>basic</td></tr></tbody></table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "| Level |")
		assert.Contains(t, md, "basic")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("   ")

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}
