package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/brewery-dashboard/internal/dashboard"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

func newTestFetcher(src domain.RecordSource, opts dashboard.FetchOptions) (*dashboard.Fetcher, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = time.Millisecond
	}
	return dashboard.NewFetcher(src, opts, observability.DiscardLogger(), metrics), metrics
}

func TestFetcher_All_StopsOnFirstEmptyPage(t *testing.T) {
	src := &pagedSource{pages: [][]domain.Brewery{
		breweries("a", 50),
		breweries("b", 12),
		{},
		breweries("never", 5),
	}}
	f, metrics := newTestFetcher(src, dashboard.FetchOptions{PerPage: 50})

	res, err := f.All(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Records, 62)
	assert.Equal(t, 3, res.Pages)
	assert.False(t, res.Truncated)
	assert.Equal(t, []int{1, 2, 3}, src.calls)
	assert.Equal(t, []int{50, 50, 50}, src.perPages)
	assert.Equal(t, "a0", res.Records[0].ID)
	assert.Equal(t, "b11", res.Records[61].ID)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.PagesFetched))
}

func TestFetcher_All_EmptySource(t *testing.T) {
	src := &pagedSource{}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{})

	res, err := f.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, res.Pages)
}

func TestFetcher_All_TruncatesAtMaxPages(t *testing.T) {
	src := &pagedSource{endless: true}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{PerPage: 10, MaxPages: 3})

	res, err := f.All(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Len(t, res.Records, 30)
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, []int{1, 2, 3, 4}, src.calls)
}

func TestFetcher_All_ExactlyMaxPagesIsComplete(t *testing.T) {
	src := &pagedSource{pages: [][]domain.Brewery{
		breweries("a", 10),
		breweries("b", 10),
		breweries("c", 10),
	}}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{PerPage: 10, MaxPages: 3})

	res, err := f.All(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Truncated)
	assert.Len(t, res.Records, 30)
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, []int{1, 2, 3, 4}, src.calls)
}

func TestFetcher_All_RetriesTransportFailures(t *testing.T) {
	src := &pagedSource{
		pages: [][]domain.Brewery{breweries("a", 5)},
		errs:  []error{transportErr("reset"), transportErr("reset")},
	}
	f, metrics := newTestFetcher(src, dashboard.FetchOptions{Retries: 3})

	res, err := f.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Records, 5)
	assert.Equal(t, []int{1, 1, 1, 2}, src.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.FetchRetries))
}

func TestFetcher_All_GivesUpAfterRetries(t *testing.T) {
	src := &pagedSource{
		pages: [][]domain.Brewery{breweries("a", 5)},
		errs:  []error{transportErr("1"), transportErr("2"), transportErr("3")},
	}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{Retries: 2})

	_, err := f.All(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "page 1")
	assert.Equal(t, 3, src.callCount())
}

func TestFetcher_All_MalformedNotRetried(t *testing.T) {
	src := &pagedSource{
		pages: [][]domain.Brewery{breweries("a", 5)},
		errs:  []error{domain.ErrMalformedResponse},
	}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{Retries: 3})

	_, err := f.All(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Equal(t, 1, src.callCount())
}

func TestFetcher_All_ContextCancelled(t *testing.T) {
	src := &pagedSource{endless: true}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.All(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, src.callCount())
}

func TestFetcher_All_CancelDuringBackoff(t *testing.T) {
	src := &pagedSource{errs: []error{transportErr("down")}}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{Retries: 5, RetryBackoff: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.All(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetcher_SinglePage(t *testing.T) {
	src := &pagedSource{pages: [][]domain.Brewery{breweries("a", 30), breweries("b", 30)}}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{PerPage: 30})

	res, err := f.SinglePage(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Records, 30)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, []int{0}, src.calls, "single-page mode sends no page index")
}

func TestFetcher_Fetch_DispatchesOnMode(t *testing.T) {
	src := &pagedSource{pages: [][]domain.Brewery{breweries("a", 2)}}
	f, _ := newTestFetcher(src, dashboard.FetchOptions{})

	_, err := f.Fetch(context.Background(), dashboard.ModeSingle)
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), dashboard.ModeAll)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, src.calls)
}

func TestParseMode(t *testing.T) {
	m, err := dashboard.ParseMode("single")
	require.NoError(t, err)
	assert.Equal(t, dashboard.ModeSingle, m)

	m, err = dashboard.ParseMode("all")
	require.NoError(t, err)
	assert.Equal(t, dashboard.ModeAll, m)

	_, err = dashboard.ParseMode("some")
	assert.Error(t, err)
}
