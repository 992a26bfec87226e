// Package fetcher reads the map's data endpoints from a remote server.
package fetcher

import (
	"context"
	"io"
)

// Fetcher opens a data endpoint relative to a server's base URL.
type Fetcher interface {
	// Open returns the body of a successful GET of endpoint. The caller closes it.
	Open(ctx context.Context, endpoint string) (io.ReadCloser, error)
}
