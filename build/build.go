// Package build produces the search index artifact and title map from a
// tree of site sources.
package build

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/sitesearch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent source parsing.
const DefaultConcurrency = 8

// Builder walks a source tree and builds the search index artifact.
type Builder struct {
	// Parsers maps file extensions (".md", ".html") to source parsers.
	// Files with other extensions are skipped.
	Parsers map[string]sitesearch.SourceParser

	// Pattern restricts sources to slash-separated relative paths that
	// match it (path.Match syntax), e.g. "recipes/*.md". Empty includes all.
	Pattern string

	Concurrency int

	// Progress, if set, is called once per parsed source.
	Progress ProgressFunc
}

// ProgressEvent reports the outcome of parsing one source.
type ProgressEvent struct {
	Path      string
	ID        string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// Result holds the outputs of a build.
type Result struct {
	Artifact *sitesearch.Artifact
	Titles   sitesearch.TitleMap
}

// Build parses every matching source in fsys. Documents are ordered by
// level, then title. Any parse failure aborts the build.
func (b *Builder) Build(ctx context.Context, fsys fs.FS) (*Result, error) {
	if b.Pattern != "" {
		if _, err := path.Match(b.Pattern, ""); err != nil {
			return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid source pattern %q: %v", b.Pattern, err)
		}
	}

	sources, err := b.collect(fsys)
	if err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	docs := make([]*sitesearch.Document, len(sources))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, src := range sources {
		g.Go(func() error {
			doc, err := b.parse(gctx, fsys, src)
			if b.Progress != nil {
				event := ProgressEvent{
					Path:      src,
					Completed: int(completed.Add(1)),
					Total:     len(sources),
					Error:     err,
				}
				if doc != nil {
					event.ID = doc.ID
				}
				b.Progress(event)
			}
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(docs))
	for i, doc := range docs {
		if prev, ok := seen[doc.ID]; ok {
			return nil, sitesearch.Errorf(sitesearch.ECONFLICT, "sources %s and %s both publish %s", prev, sources[i], doc.ID)
		}
		seen[doc.ID] = sources[i]
	}

	slices.SortFunc(docs, sitesearch.CompareDocuments)

	return &Result{
		Artifact: sitesearch.NewArtifact(docs),
		Titles:   sitesearch.NewTitleMap(docs),
	}, nil
}

// collect returns the relative paths of all sources to parse, in walk order.
func (b *Builder) collect(fsys fs.FS) ([]string, error) {
	var sources []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if _, ok := b.Parsers[path.Ext(p)]; !ok {
			return nil
		}
		if b.Pattern != "" {
			if ok, _ := path.Match(b.Pattern, p); !ok {
				return nil
			}
		}
		sources = append(sources, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk sources: %w", err)
	}
	return sources, nil
}

func (b *Builder) parse(ctx context.Context, fsys fs.FS, src string) (*sitesearch.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := fs.ReadFile(fsys, src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}

	doc, err := b.Parsers[path.Ext(src)].Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}

	doc.ID = Permalink(src)
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(path.Base(src), path.Ext(src))
	}
	return doc, nil
}

// Permalink returns the document identifier a source is published under.
// Markdown sources become directory index pages: "recipes/foo.md" is
// published as "recipes/foo/index.html" and "recipes/index.md" as
// "recipes/index.html". Other sources keep their path.
func Permalink(src string) string {
	if path.Ext(src) != ".md" {
		return src
	}
	stem := strings.TrimSuffix(src, ".md")
	if path.Base(stem) == "index" {
		return stem + ".html"
	}
	return stem + "/" + sitesearch.DefaultLinkSuffix
}
