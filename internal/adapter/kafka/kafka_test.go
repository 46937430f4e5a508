package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/brewery-dashboard/internal/config"
	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/observability"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	summary := domain.SnapshotSummary{
		Digest:    "0123456789abcdef",
		FetchedAt: now,
		Pages:     3,
		Stats:     domain.Stats{Total: 62, MostCommonType: "micro", UniqueStateCount: 4},
		TypeDistribution: domain.Distribution{
			{Label: "micro", Count: 40},
			{Label: "brewpub", Count: 22},
		},
		StateDistribution: domain.Distribution{{Label: "Colorado", Count: 62}},
	}

	msg, err := serializeToMessage(summary)
	require.NoError(t, err)

	assert.Equal(t, []byte("0123456789abcdef"), msg.Key)
	assert.Contains(t, string(msg.Value), `"most_common_type":"micro"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "digest", msg.Headers[0].Key)
	assert.Equal(t, []byte("0123456789abcdef"), msg.Headers[0].Value)
	assert.Equal(t, "fetched_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var roundtrip domain.SnapshotSummary
	require.NoError(t, json.Unmarshal(msg.Value, &roundtrip))
	assert.Equal(t, summary.TypeDistribution, roundtrip.TypeDistribution)
	assert.Equal(t, 3, roundtrip.Pages)
}

func TestNewSnapshotWriter_UsesConfiguredTopic(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:       []string{"localhost:9092", "localhost:9093"},
		KafkaSnapshotTopic: "brewery-snapshots",
	}

	w := NewSnapshotWriter(cfg, observability.DiscardLogger())
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "brewery-snapshots", w.writer.Topic)
	assert.NotNil(t, w.writer.Addr)
	assert.True(t, w.writer.AllowAutoTopicCreation)
}
