package domain

import (
	"context"
	"errors"
)

// Record Source failure kinds. Adapters wrap these so callers can classify
// failures with errors.Is.
var (
	// ErrTransport covers network, DNS and non-2xx HTTP failures.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse covers bodies that are not JSON or have the wrong shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNotFound is returned by FetchByID when the source has no such record.
	ErrNotFound = errors.New("brewery not found")
)

// RecordSource supplies brewery records.
type RecordSource interface {
	// FetchPage returns one page of records. Page 0 requests the first page
	// without an explicit page parameter (single-page mode).
	FetchPage(ctx context.Context, page, perPage int) ([]Brewery, error)

	// FetchByID returns a single record.
	FetchByID(ctx context.Context, id string) (Brewery, error)
}
