package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
)

// Ensure PageParser implements sitesearch.SourceParser at compile time.
var _ sitesearch.SourceParser = (*PageParser)(nil)

// contentSelectors are tried in order to find the main page content.
var contentSelectors = []string{"main", "article", "[role=main]", "body"}

// PageParser turns a rendered HTML page into a Document. The title comes
// from <title>, falling back to the first h1. The level comes from
// <meta name="level">. Contents are the main content converted by
// Converter, or its plain text when Converter is nil.
type PageParser struct {
	Converter sitesearch.Converter

	// Extractor, if set, isolates the main content before conversion. Its
	// title is used when the page has neither <title> nor h1.
	Extractor sitesearch.Extractor
}

// NewPageParser creates a PageParser that converts contents with conv.
func NewPageParser(conv sitesearch.Converter) *PageParser {
	return &PageParser{Converter: conv}
}

// Parse extracts a Document from HTML content.
func (p *PageParser) Parse(ctx context.Context, content []byte) (*sitesearch.Document, error) {
	if strings.TrimSpace(string(content)) == "" {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "empty HTML page")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(content)))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	level, _ := doc.Find(`meta[name="level"]`).First().Attr("content")

	body := selectContent(doc)
	if p.Extractor != nil {
		ext, err := p.Extractor.Extract(string(content))
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = ext.Title
		}
		extracted, err := goquery.NewDocumentFromReader(strings.NewReader(ext.ContentHTML))
		if err != nil {
			return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse extracted HTML: %v", err)
		}
		body = extracted.Find("body").First()
	}
	body.Find("script, style, nav").Remove()

	contents, err := p.contents(body)
	if err != nil {
		return nil, err
	}

	return &sitesearch.Document{
		Title:    title,
		Contents: contents,
		Level:    strings.TrimSpace(level),
	}, nil
}

func (p *PageParser) contents(sel *goquery.Selection) (string, error) {
	if p.Converter == nil {
		return strings.Join(strings.Fields(sel.Text()), " "), nil
	}

	html, err := sel.Html()
	if err != nil {
		return "", sitesearch.Errorf(sitesearch.EINVALID, "failed to render content: %v", err)
	}
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	return p.Converter.Convert(html)
}

func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}
