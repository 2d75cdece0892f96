// Package goquery provides HTML page parsing for the search index build and
// for reading inline page data, using goquery.
package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
)

// TitlesScriptID is the id of the inline script element carrying the title map.
const TitlesScriptID = "search-titles"

// ExtractTitleMap reads the inline title map from a rendered page. The map
// is a JSON object in a <script type="application/json" id="search-titles">
// element. A page without the element yields an empty map.
func ExtractTitleMap(html string) (sitesearch.TitleMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse HTML: %v", err)
	}

	script := doc.Find("script#" + TitlesScriptID).First()
	if script.Length() == 0 {
		return sitesearch.TitleMap{}, nil
	}

	raw := strings.TrimSpace(script.Text())
	if raw == "" {
		return sitesearch.TitleMap{}, nil
	}

	var titles sitesearch.TitleMap
	if err := json.Unmarshal([]byte(raw), &titles); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "malformed inline title map: %v", err)
	}
	if titles == nil {
		titles = sitesearch.TitleMap{}
	}
	return titles, nil
}

// TitlesScript renders titles as the inline script element read by
// ExtractTitleMap, for embedding by page templates.
func TitlesScript(titles sitesearch.TitleMap) (string, error) {
	data, err := json.Marshal(titles)
	if err != nil {
		return "", err
	}
	// Keep the JSON from terminating the script element early.
	body := strings.ReplaceAll(string(data), "</", `<\/`)
	return `<script type="application/json" id="` + TitlesScriptID + `">` + body + `</script>`, nil
}
