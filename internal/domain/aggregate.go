package domain

// NoneLabel is the most common type of an empty record set.
const NoneLabel = "None"

// Stats is the summary shown on the dashboard stat cards.
type Stats struct {
	Total            int    `json:"total"`
	MostCommonType   string `json:"most_common_type"`
	UniqueStateCount int    `json:"unique_state_count"`
}

// Bucket is one category of a Distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution maps category labels to occurrence counts in first-seen order.
type Distribution []Bucket

// Count returns the count for label, or 0 if the label is absent.
func (d Distribution) Count(label string) int {
	for _, b := range d {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

// Total sums the bucket counts.
func (d Distribution) Total() int {
	var n int
	for _, b := range d {
		n += b.Count
	}
	return n
}

// Labels returns the bucket labels in order.
func (d Distribution) Labels() []string {
	labels := make([]string, len(d))
	for i, b := range d {
		labels[i] = b.Label
	}
	return labels
}

// Aggregation bundles every derived structure for one record set.
type Aggregation struct {
	Stats             Stats        `json:"stats"`
	TypeDistribution  Distribution `json:"type_distribution"`
	StateDistribution Distribution `json:"state_distribution"`
}

// Aggregate derives stats and both distributions from records.
func Aggregate(records []Brewery) Aggregation {
	types := TypeDistribution(records)
	return Aggregation{
		Stats: Stats{
			Total:            len(records),
			MostCommonType:   mostCommon(types),
			UniqueStateCount: uniqueStates(records),
		},
		TypeDistribution:  types,
		StateDistribution: StateDistribution(records),
	}
}

// ComputeStats derives the stat card values from records.
func ComputeStats(records []Brewery) Stats {
	return Aggregate(records).Stats
}

// TypeDistribution counts records per type label, "Unknown" for missing types.
func TypeDistribution(records []Brewery) Distribution {
	return tally(records, Brewery.TypeLabel)
}

// StateDistribution counts records per state label, "Unknown" for missing states.
func StateDistribution(records []Brewery) Distribution {
	return tally(records, func(b Brewery) string {
		if s := b.StateLabel(); s != "" {
			return s
		}
		return UnknownLabel
	})
}

// tally counts labels in a single pass, keeping first-seen order.
func tally(records []Brewery, label func(Brewery) string) Distribution {
	dist := Distribution{}
	index := make(map[string]int)
	for _, r := range records {
		l := label(r)
		i, ok := index[l]
		if !ok {
			i = len(dist)
			index[l] = i
			dist = append(dist, Bucket{Label: l})
		}
		dist[i].Count++
	}
	return dist
}

// mostCommon returns the label with the highest count. Ties go to the label
// seen first. An empty distribution yields NoneLabel.
func mostCommon(d Distribution) string {
	best := Bucket{Label: NoneLabel}
	for _, b := range d {
		if b.Count > best.Count {
			best = b
		}
	}
	return best.Label
}

// uniqueStates counts distinct raw state labels. Records with no state
// contribute the empty label, which counts once. An explicit empty state
// and an absent one share that label.
func uniqueStates(records []Brewery) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.StateLabel()] = struct{}{}
	}
	return len(seen)
}
