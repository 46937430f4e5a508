package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// Mode selects how a load acquires records.
type Mode string

const (
	// ModeSingle fetches one bounded page.
	ModeSingle Mode = "single"
	// ModeAll walks pages 1, 2, 3, ... until the first empty page.
	ModeAll Mode = "all"
)

// ParseMode validates a fetch mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeAll:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown fetch mode %q (want %q or %q)", s, ModeSingle, ModeAll)
	}
}

// Default retry backoff bounds.
const (
	DefaultRetryBackoff = 200 * time.Millisecond
	DefaultMaxBackoff   = 5 * time.Second
)

// FetchOptions bound a fetch.
type FetchOptions struct {
	PerPage      int
	MaxPages     int
	Retries      int
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.PerPage < 1 {
		o.PerPage = 50
	}
	if o.MaxPages < 1 {
		o.MaxPages = 1000
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = DefaultRetryBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
	return o
}

// FetchResult is the outcome of one acquisition. Pages counts every list
// request that succeeded, including the terminating empty page.
type FetchResult struct {
	Records   []domain.Brewery
	Pages     int
	Truncated bool
}

// Fetcher acquires record sequences from a RecordSource. Requests are
// strictly sequential.
type Fetcher struct {
	source  domain.RecordSource
	opts    FetchOptions
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFetcher creates a Fetcher. Zero-valued options take defaults.
func NewFetcher(source domain.RecordSource, opts FetchOptions, logger *slog.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		source:  source,
		opts:    opts.withDefaults(),
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch runs the acquisition for the given mode.
func (f *Fetcher) Fetch(ctx context.Context, mode Mode) (FetchResult, error) {
	if mode == ModeSingle {
		return f.SinglePage(ctx)
	}
	return f.All(ctx)
}

// SinglePage requests one page of PerPage records without a page index.
func (f *Fetcher) SinglePage(ctx context.Context) (FetchResult, error) {
	records, err := f.fetchPage(ctx, 0)
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{Records: records, Pages: 1}, nil
}

// All concatenates pages in order until the source returns an empty page.
// After MaxPages pages one more page is requested; if it still has records
// the walk stops there, that page is dropped and the result is flagged as
// truncated.
func (f *Fetcher) All(ctx context.Context) (FetchResult, error) {
	var res FetchResult
	res.Records = []domain.Brewery{}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return FetchResult{}, err
		}

		records, err := f.fetchPage(ctx, page)
		if err != nil {
			return FetchResult{}, fmt.Errorf("page %d: %w", page, err)
		}
		res.Pages++
		if len(records) == 0 {
			return res, nil
		}
		if page > f.opts.MaxPages {
			f.logger.Warn("page limit reached, result truncated",
				"max_pages", f.opts.MaxPages, "records", len(res.Records))
			res.Truncated = true
			return res, nil
		}
		res.Records = append(res.Records, records...)
	}
}

// fetchPage retries transport failures with exponential backoff. Malformed
// responses are returned immediately.
func (f *Fetcher) fetchPage(ctx context.Context, page int) ([]domain.Brewery, error) {
	backoff := f.opts.RetryBackoff

	for attempt := 0; ; attempt++ {
		records, err := f.source.FetchPage(ctx, page, f.opts.PerPage)
		if err == nil {
			f.metrics.PagesFetched.Inc()
			return records, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, domain.ErrTransport) || attempt >= f.opts.Retries {
			return nil, err
		}

		f.logger.Warn("page fetch failed, retrying",
			"error", err, "page", page, "attempt", attempt+1, "backoff", backoff)
		f.metrics.FetchRetries.Inc()
		if !sleepWithContext(ctx, backoff) {
			return nil, ctx.Err()
		}
		backoff = nextBackoff(backoff, f.opts.MaxBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
