package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Converter sitesearch.Converter

	// Index command.
	Parsers map[string]sitesearch.SourceParser

	// Search command.
	Fetcher  sitesearch.Fetcher
	Loader   sitesearch.IndexLoader
	RootPath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Index  IndexCmd  `cmd:"" help:"Build the search index from site sources"`
	Search SearchCmd `cmd:"" help:"Search a built site"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Source      string `arg:"" type:"path" help:"Directory of site sources (.md, .html)"`
	Out         string `short:"o" type:"path" help:"Output directory (defaults to the source directory)"`
	Pattern     string `short:"p" help:"Only index sources matching this glob, e.g. 'recipes/*.md'"`
	Concurrency int    `short:"c" default:"8" help:"Concurrent parse limit"`
	Extractor   string `short:"x" enum:"none,readability,trafilatura" default:"none" help:"Main content extractor for .html sources (none, readability, trafilatura)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Terms       []string      `arg:"" optional:"" help:"Search terms, each searched separately"`
	Root        string        `short:"r" env:"SITESEARCH_ROOT" xor:"site" help:"Site root URL"`
	Dir         string        `short:"d" env:"SITESEARCH_DIR" type:"path" xor:"site" help:"Local site directory"`
	Page        string        `help:"Page carrying the inline title map, relative to the site root"`
	Timeout     time.Duration `env:"SITESEARCH_TIMEOUT" default:"10s" help:"HTTP request timeout"`
	Format      string        `short:"f" enum:"markdown,html,text" default:"markdown" help:"Result format (markdown, html, text)"`
	Interactive bool          `short:"i" help:"Read keystrokes from stdin, one input value per line ('/' focuses the input)"`
}
