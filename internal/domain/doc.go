// Package domain models Open Brewery DB records and the pure engines that
// derive dashboard state from them.
//
// # Data Source
//
// Records come from the Open Brewery DB v1 REST API
// (https://www.openbrewerydb.org/documentation). List endpoints return a JSON
// array of breweries; the by-id endpoint returns a single object. Presence of
// every field except id varies per record.
//
// # Field Conventions
//
// State:
//
//	"state_province" is the current field, "state" the legacy alias.
//	state_province wins when it is non-empty. See [Brewery.StateLabel].
//
// Type:
//
//	One of micro, nano, regional, brewpub, large, planning, contract,
//	proprietor, closed. Missing types are bucketed as "Unknown" for
//	aggregation and never match a type filter.
//
// Coordinates:
//
//	Served as JSON numbers by the current API and as numeric strings by
//	older deployments. Both decode into [Coordinate]; null means absent.
//
// # Engines
//
// [Aggregate] derives [Stats] and the two ordered [Distribution] values.
// [Filter] derives the visible subset for a [Query]. Both are pure and safe
// for concurrent use; callers hand them an immutable record slice.
//
// # Unique State Count
//
// [ComputeStats] counts distinct raw state labels, so records lacking both
// state fields collapse into a single empty label that counts as one state.
// The state distribution labels the same records "Unknown". Both rules agree
// on the count except when a record literally carries the state "Unknown".
package domain
