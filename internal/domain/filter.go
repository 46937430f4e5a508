package domain

import "strings"

// Query holds the Filter Engine inputs emitted by the presentation layer.
type Query struct {
	Search string `json:"search"`
	Type   string `json:"type"`
}

// IsZero reports whether the query matches every record.
func (q Query) IsZero() bool {
	return q.Search == "" && q.Type == ""
}

// Matches reports whether a record passes both the search and type predicates.
func (q Query) Matches(b Brewery) bool {
	return matchesSearch(b, strings.ToLower(q.Search)) && matchesType(b, q.Type)
}

// Filter returns the records matching q, in input order. The input slice is
// never modified; an empty query returns a copy of every record.
func Filter(records []Brewery, q Query) []Brewery {
	search := strings.ToLower(q.Search)
	out := make([]Brewery, 0, len(records))
	for _, r := range records {
		if matchesSearch(r, search) && matchesType(r, q.Type) {
			out = append(out, r)
		}
	}
	return out
}

// matchesSearch expects search already lower-cased.
func matchesSearch(b Brewery, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Name), search)
}

// matchesType compares against the raw type: no normalization, no "Unknown".
func matchesType(b Brewery, filterType string) bool {
	return filterType == "" || b.BreweryType == filterType
}
