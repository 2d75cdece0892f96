package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingLoader implements sitesearch.IndexLoader.
var _ sitesearch.IndexLoader = (*LoggingLoader)(nil)

// LoggingLoader wraps an IndexLoader with logging. Indexes it returns are
// wrapped in a LoggingIndex using the same logger.
type LoggingLoader struct {
	next   sitesearch.IndexLoader
	logger *slog.Logger
}

// NewLoggingLoader creates a new LoggingLoader.
func NewLoggingLoader(next sitesearch.IndexLoader, logger *slog.Logger) *LoggingLoader {
	return &LoggingLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the operation.
func (l *LoggingLoader) Load(data []byte) (idx sitesearch.Index, err error) {
	defer func(begin time.Time) {
		l.logger.Info("index load",
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	idx, err = l.next.Load(data)
	if err != nil {
		return nil, err
	}
	return NewLoggingIndex(idx, l.logger), nil
}

// Ensure LoggingIndex implements sitesearch.Index.
var _ sitesearch.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with debug logging.
type LoggingIndex struct {
	next   sitesearch.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next sitesearch.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Search delegates to the wrapped index and logs the query.
func (i *LoggingIndex) Search(term string) (matches []sitesearch.Match, err error) {
	defer func(begin time.Time) {
		i.logger.Debug("search",
			"term", term,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Search(term)
}
