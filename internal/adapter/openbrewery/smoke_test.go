//go:build openbrewery

package openbrewery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

// These tests hit the real Open Brewery DB API.
// Run with: go test -tags=openbrewery ./internal/adapter/openbrewery/ -v -count=1

func smokeClient() *Client {
	return NewClient(DefaultBaseURL, 10*time.Second, 2, observability.NewMetricsForTesting(), observability.DiscardLogger())
}

func TestSmoke_FetchPage(t *testing.T) {
	records, err := smokeClient().FetchPage(context.Background(), 1, 5)
	require.NoError(t, err)

	require.Len(t, records, 5)
	for _, r := range records {
		assert.NotEmpty(t, r.ID)
		assert.NotEmpty(t, r.Name)
	}
}

func TestSmoke_FetchPagePastTheEnd(t *testing.T) {
	records, err := smokeClient().FetchPage(context.Background(), 1_000_000, 50)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSmoke_FetchByID(t *testing.T) {
	c := smokeClient()
	records, err := c.FetchPage(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	b, err := c.FetchByID(context.Background(), records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, records[0].ID, b.ID)
	assert.Equal(t, records[0].Name, b.Name)
}
