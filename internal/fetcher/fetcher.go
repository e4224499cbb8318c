// Package fetcher downloads remote data files and parses delimited text.
package fetcher

import (
	"context"
	"io"
)

// Fetcher downloads remote resources.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// closes it.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
