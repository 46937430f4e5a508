package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Brewery is one brewery as returned by the Record Source.
type Brewery struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	BreweryType   string     `json:"brewery_type,omitempty"`
	Address1      string     `json:"address_1,omitempty"`
	Address2      string     `json:"address_2,omitempty"`
	Address3      string     `json:"address_3,omitempty"`
	Street        string     `json:"street,omitempty"` // legacy alias of address_1
	City          string     `json:"city,omitempty"`
	StateProvince string     `json:"state_province,omitempty"`
	State         string     `json:"state,omitempty"` // legacy alias of state_province
	PostalCode    string     `json:"postal_code,omitempty"`
	Country       string     `json:"country,omitempty"`
	Longitude     Coordinate `json:"longitude"`
	Latitude      Coordinate `json:"latitude"`
	Phone         string     `json:"phone,omitempty"`
	WebsiteURL    string     `json:"website_url,omitempty"`
}

// UnknownLabel buckets records whose type or state is missing.
const UnknownLabel = "Unknown"

// StateLabel returns state_province when set, otherwise the legacy state
// field. The result is empty when neither is present.
func (b Brewery) StateLabel() string {
	if b.StateProvince != "" {
		return b.StateProvince
	}
	return b.State
}

// TypeLabel returns the brewery type, or UnknownLabel when it is missing.
func (b Brewery) TypeLabel() string {
	if b.BreweryType == "" {
		return UnknownLabel
	}
	return b.BreweryType
}

// FormattedAddress joins the non-empty address lines with ", ".
// Falls back to the legacy street field when address_1 is missing.
func (b Brewery) FormattedAddress() string {
	first := b.Address1
	if first == "" {
		first = b.Street
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{first, b.Address2, b.Address3} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether both latitude and longitude are present.
func (b Brewery) HasCoordinates() bool {
	return b.Latitude.Valid && b.Longitude.Valid
}

// Coordinate is an optional WGS-84 degree value.
type Coordinate struct {
	Value float64
	Valid bool
}

// NewCoordinate returns a present coordinate.
func NewCoordinate(v float64) Coordinate {
	return Coordinate{Value: v, Valid: true}
}

// UnmarshalJSON accepts a number, a numeric string, an empty string or null.
// NaN and infinities are rejected.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Coordinate{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("coordinate: %w", err)
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*c = Coordinate{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("coordinate %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("coordinate %q: not a finite number", raw)
	}
	*c = NewCoordinate(v)
	return nil
}

// MarshalJSON writes the value as a number, or null when absent.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(c.Value, 'f', -1, 64)), nil
}

// MarshalYAML mirrors MarshalJSON for YAML output.
func (c Coordinate) MarshalYAML() (any, error) {
	if !c.Valid {
		return nil, nil
	}
	return c.Value, nil
}

func (c Coordinate) String() string {
	if !c.Valid {
		return ""
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}
