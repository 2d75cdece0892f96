package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/dom"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/fwojciec/sitesearch/widget"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	titles, err := c.loadTitles(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	var view *dom.View
	var opts []dom.Option
	if c.Interactive {
		opts = append(opts, dom.WithOnRender(func(string) {
			c.print(deps, view, "")
		}))
	}
	view = dom.NewView(opts...)

	w := widget.New(widget.Options{
		Fetcher:  deps.Fetcher,
		Loader:   deps.Loader,
		View:     view,
		Titles:   titles,
		RootPath: deps.RootPath,
		Logger:   deps.Logger,
	})
	defer w.Close()

	if err := w.Load(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if c.Interactive {
		return c.interact(deps, w, view)
	}

	if len(c.Terms) == 0 {
		return fmt.Errorf("no search terms given. Pass terms or use --interactive")
	}
	for _, term := range c.Terms {
		w.Search(term)
		c.print(deps, view, term)
		w.Search("")
	}
	return nil
}

// interact feeds stdin lines to the widget as successive input values.
func (c *SearchCmd) interact(deps *Dependencies, w *widget.Widget, view *dom.View) error {
	fmt.Fprintln(deps.Stderr, "Type to search, '/' focuses the input, Ctrl-D exits.")

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "/" {
			w.KeyUp(sitesearch.KeySlash)
			if view.Focused() {
				fmt.Fprintln(deps.Stderr, "(search input focused)")
			}
			continue
		}
		w.Input(line)
	}
	w.Flush()
	return scanner.Err()
}

// print writes the current results in the selected format. When term is
// set and nothing is rendered, a no-results line is written instead.
func (c *SearchCmd) print(deps *Dependencies, view *dom.View, term string) {
	entries := view.Results()
	if len(entries) == 0 {
		if term != "" {
			fmt.Fprintf(deps.Stdout, "No results for %q\n", term)
		}
		return
	}

	switch c.Format {
	case "html":
		fmt.Fprintln(deps.Stdout, view.ResultsHTML())
	case "text":
		for _, e := range entries {
			fmt.Fprintf(deps.Stdout, "%s\t./%s\n", e.Title, e.Link)
		}
	default:
		md, err := deps.Converter.Convert(view.ResultsHTML())
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
			return
		}
		fmt.Fprintln(deps.Stdout, strings.TrimSpace(md))
	}
}

// loadTitles reads the title map from the inline script of --page, or from
// the standalone titles file next to the index. A missing titles file
// yields an empty map and blank result titles.
func (c *SearchCmd) loadTitles(deps *Dependencies) (sitesearch.TitleMap, error) {
	if c.Page != "" {
		html, err := deps.Fetcher.Fetch(deps.Ctx, deps.RootPath+c.Page)
		if err != nil {
			return nil, err
		}
		return goquery.ExtractTitleMap(html)
	}

	data, err := deps.Fetcher.Fetch(deps.Ctx, deps.RootPath+sitesearch.TitlesName)
	if sitesearch.ErrorCode(err) == sitesearch.ENOTFOUND {
		deps.Logger.Warn("no title map", "url", deps.RootPath+sitesearch.TitlesName)
		return sitesearch.TitleMap{}, nil
	} else if err != nil {
		return nil, err
	}

	var titles sitesearch.TitleMap
	if err := json.Unmarshal([]byte(data), &titles); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid title map: %v", err)
	}
	return titles, nil
}
