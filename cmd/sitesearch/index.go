package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/build"
	sitesearchfs "github.com/fwojciec/sitesearch/fs"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	out := c.Out
	if out == "" {
		out = c.Source
	}

	// Progress is called from parser goroutines.
	var mu sync.Mutex
	builder := &build.Builder{
		Parsers:     deps.Parsers,
		Pattern:     c.Pattern,
		Concurrency: c.Concurrency,
		Progress: func(event build.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			if event.Error != nil {
				fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.Path, event.Error)
				return
			}
			deps.Logger.Debug("parsed source",
				"path", event.Path,
				"id", event.ID,
				"completed", event.Completed,
				"total", event.Total,
			)
		},
	}

	result, err := builder.Build(deps.Ctx, os.DirFS(c.Source))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	w := sitesearchfs.NewWriter(out)
	n, err := w.WriteArtifact(result.Artifact, result.Titles)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d documents (%s)\n", len(result.Artifact.Documents), formatBytes(n))
	fmt.Fprintf(deps.Stdout, "  %s\n", w.ArtifactPath())
	fmt.Fprintf(deps.Stdout, "  %s\n", w.TitlesPath())
	return nil
}

// formatBytes formats byte count in human-readable form.
func formatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
