package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// Ensure Fetcher implements sitesearch.Fetcher at compile time.
var _ sitesearch.Fetcher = (*Fetcher)(nil)

// Fetcher reads site resources from a local directory. URLs are
// slash-separated paths relative to the directory; a leading "./" or "/" is
// ignored and paths that escape the directory are rejected.
type Fetcher struct {
	fsys iofs.FS
}

// NewFetcher creates a Fetcher rooted at dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{fsys: os.DirFS(dir)}
}

// NewFSFetcher creates a Fetcher over fsys.
func NewFSFetcher(fsys iofs.FS) *Fetcher {
	return &Fetcher{fsys: fsys}
}

// Fetch returns the contents of the file at url. A directory resolves to
// its index.html.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := strings.TrimPrefix(url, "./")
	name = strings.TrimLeft(name, "/")
	if name == "" {
		name = "."
	}
	name = path.Clean(name)
	if !iofs.ValidPath(name) {
		return "", sitesearch.Errorf(sitesearch.EINVALID, "invalid path %q", url)
	}

	if info, err := iofs.Stat(f.fsys, name); err == nil && info.IsDir() {
		name = path.Join(name, "index.html")
	}

	data, err := iofs.ReadFile(f.fsys, name)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", sitesearch.Errorf(sitesearch.ENOTFOUND, "%s not found", url)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
