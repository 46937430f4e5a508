package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Snapshot is an immutable record set captured by one load.
type Snapshot struct {
	Records   []Brewery `json:"-"`
	Digest    string    `json:"digest"`
	FetchedAt time.Time `json:"fetched_at"`
	Pages     int       `json:"pages"`
	Truncated bool      `json:"truncated"`
}

// NewSnapshot captures records, stamping them with the package clock and a
// content digest.
func NewSnapshot(records []Brewery, pages int, truncated bool) *Snapshot {
	if records == nil {
		records = []Brewery{}
	}
	return &Snapshot{
		Records:   records,
		Digest:    digest(records),
		FetchedAt: clock.Now().UTC(),
		Pages:     pages,
		Truncated: truncated,
	}
}

// SnapshotSummary is the derived state of a snapshot, published downstream
// after every successful load.
type SnapshotSummary struct {
	Digest            string       `json:"digest"`
	FetchedAt         time.Time    `json:"fetched_at"`
	Pages             int          `json:"pages"`
	Truncated         bool         `json:"truncated"`
	Stats             Stats        `json:"stats"`
	TypeDistribution  Distribution `json:"type_distribution"`
	StateDistribution Distribution `json:"state_distribution"`
}

// Summarize aggregates the snapshot's records.
func (s *Snapshot) Summarize() SnapshotSummary {
	agg := Aggregate(s.Records)
	return SnapshotSummary{
		Digest:            s.Digest,
		FetchedAt:         s.FetchedAt,
		Pages:             s.Pages,
		Truncated:         s.Truncated,
		Stats:             agg.Stats,
		TypeDistribution:  agg.TypeDistribution,
		StateDistribution: agg.StateDistribution,
	}
}

// digest is a short SHA-256 of the records' JSON encoding. Equal record
// sequences produce equal digests, which keys view memoization.
func digest(records []Brewery) string {
	data, err := json.Marshal(records)
	if err != nil {
		// coordinates are finite once decoded, so this only guards
		// hand-built records
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
