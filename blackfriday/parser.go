// Package blackfriday implements sitesearch.SourceParser for Markdown
// sources with YAML front matter. Markdown is rendered with blackfriday and
// reduced to plain text with bluemonday for indexing.
package blackfriday

import (
	"bytes"
	"context"
	"html"
	"strings"

	"github.com/fwojciec/sitesearch"
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v3"
)

// Ensure Parser implements sitesearch.SourceParser at compile time.
var _ sitesearch.SourceParser = (*Parser)(nil)

var frontMatterDelim = []byte("---")

// FrontMatter holds the recognized front matter fields of a source.
type FrontMatter struct {
	Title string `yaml:"title"`
	Level string `yaml:"level"`
}

// Parser parses Markdown sources.
type Parser struct {
	policy *bluemonday.Policy
}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{policy: bluemonday.StrictPolicy()}
}

// Parse splits front matter from content and renders the body to plain
// text. A source without front matter gets its title from the first
// heading, if any.
func (p *Parser) Parse(ctx context.Context, content []byte) (*sitesearch.Document, error) {
	fm, body, err := SplitFrontMatter(content)
	if err != nil {
		return nil, err
	}

	rendered := blackfriday.Run(body)

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = firstHeading(body)
	}

	return &sitesearch.Document{
		Title:    title,
		Contents: p.plainText(rendered),
		Level:    strings.TrimSpace(fm.Level),
	}, nil
}

// plainText strips tags from rendered HTML and collapses whitespace.
func (p *Parser) plainText(rendered []byte) string {
	// Closing tags become word boundaries so adjacent blocks don't merge.
	spaced := bytes.ReplaceAll(rendered, []byte("</"), []byte(" </"))
	text := html.UnescapeString(string(p.policy.SanitizeBytes(spaced)))
	return strings.Join(strings.Fields(text), " ")
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// Markdown body. Content without front matter is returned unchanged.
func SplitFrontMatter(content []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter

	trimmed := bytes.TrimLeft(content, "\ufeff")
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		return fm, content, nil
	}

	rest := trimmed[len(frontMatterDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		// "---" followed by text on the same line is a thematic break, not front matter.
		return fm, content, nil
	}
	rest = rest[nl+1:]

	end := findClosingDelim(rest)
	if end < 0 {
		return fm, nil, sitesearch.Errorf(sitesearch.EINVALID, "unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid front matter: %v", err)
	}

	body := rest[end+len(frontMatterDelim):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return fm, body, nil
}

// findClosingDelim returns the offset of the line holding only "---", or -1.
func findClosingDelim(b []byte) int {
	offset := 0
	for offset <= len(b) {
		line := b[offset:]
		next := bytes.IndexByte(line, '\n')
		if next >= 0 {
			line = line[:next]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), frontMatterDelim) {
			return offset
		}
		if next < 0 {
			return -1
		}
		offset += next + 1
	}
	return -1
}

// firstHeading returns the text of the first heading in a Markdown body.
func firstHeading(body []byte) string {
	var title string
	root := blackfriday.New().Parse(body)
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || node.Type != blackfriday.Heading {
			return blackfriday.GoToNext
		}
		var b strings.Builder
		node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			if entering && (n.Type == blackfriday.Text || n.Type == blackfriday.Code) {
				b.Write(n.Literal)
			}
			return blackfriday.GoToNext
		})
		title = strings.TrimSpace(b.String())
		return blackfriday.Terminate
	})
	return title
}
