package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/blackfriday"
	"github.com/fwojciec/sitesearch/bleve"
	sitesearchfs "github.com/fwojciec/sitesearch/fs"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/fwojciec/sitesearch/htmltomarkdown"
	sitesearchhttp "github.com/fwojciec/sitesearch/http"
	"github.com/fwojciec/sitesearch/readability"
	sitesearchslog "github.com/fwojciec/sitesearch/slog"
	"github.com/fwojciec/sitesearch/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read by interactive search. Set before calling Run().
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitesearch"),
		kong.Description("Build and query the search index of a static site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitesearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	converter := htmltomarkdown.NewConverter()
	deps.Converter = converter

	switch kongCtx.Command() {
	case "index <source>":
		pages := goquery.NewPageParser(converter)
		switch cli.Index.Extractor {
		case "readability":
			pages.Extractor = readability.NewExtractor()
		case "trafilatura":
			pages.Extractor = trafilatura.NewExtractor()
		}
		deps.Parsers = map[string]sitesearch.SourceParser{
			".md":   blackfriday.NewParser(),
			".html": pages,
		}

	case "search", "search <terms>":
		var fetcher sitesearch.Fetcher
		switch {
		case cli.Search.Dir != "":
			fetcher = sitesearchfs.NewFetcher(cli.Search.Dir)
		case cli.Search.Root != "":
			fetcher = sitesearchhttp.NewFetcher(sitesearchhttp.WithTimeout(cli.Search.Timeout))
			deps.RootPath = sitesearchhttp.ArtifactURL(cli.Search.Root, "")
			// Markdown results link to the served site.
			deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(deps.RootPath))
		default:
			fmt.Fprintln(stderr, "Hint: Set SITESEARCH_ROOT or SITESEARCH_DIR to choose a site")
			return fmt.Errorf("either --root or --dir is required")
		}

		var loader sitesearch.IndexLoader = bleve.NewLoader()
		if cli.Verbose {
			fetcher = sitesearchslog.NewLoggingFetcher(fetcher, deps.Logger)
			loader = sitesearchslog.NewLoggingLoader(loader, deps.Logger)
		}
		defer fetcher.Close()

		deps.Fetcher = fetcher
		deps.Loader = loader
	}

	return kongCtx.Run(deps)
}
