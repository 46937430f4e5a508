package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Brewery types recognized by the Record Source.
const (
	TypeMicro      = "micro"
	TypeNano       = "nano"
	TypeRegional   = "regional"
	TypeBrewpub    = "brewpub"
	TypeLarge      = "large"
	TypePlanning   = "planning"
	TypeContract   = "contract"
	TypeProprietor = "proprietor"
	TypeClosed     = "closed"
)

// BreweryTypes lists the closed type enumeration in selector order.
var BreweryTypes = []string{
	TypeMicro,
	TypeNano,
	TypeRegional,
	TypeBrewpub,
	TypeLarge,
	TypePlanning,
	TypeContract,
	TypeProprietor,
	TypeClosed,
}

// allTypesLabel is the selector label for the empty "no filter" value.
const allTypesLabel = "All Types"

// FilterOption is one entry of the type selector.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions returns the type selector enumeration. The first option has
// the empty value and means "no filter".
func FilterOptions() []FilterOption {
	title := cases.Title(language.English)
	opts := make([]FilterOption, 0, len(BreweryTypes)+1)
	opts = append(opts, FilterOption{Value: "", Label: allTypesLabel})
	for _, t := range BreweryTypes {
		opts = append(opts, FilterOption{Value: t, Label: title.String(t)})
	}
	return opts
}

// IsFilterType reports whether v is an accepted type selector value.
func IsFilterType(v string) bool {
	if v == "" {
		return true
	}
	for _, t := range BreweryTypes {
		if t == v {
			return true
		}
	}
	return false
}
