// Package activity maps source-specific sport labels onto the fixed sport
// vocabulary used by the record and KPI logic.
package activity

import "github.com/stridehq/stride/pkg/types"

// sportMapping maps raw source labels to the normalized vocabulary.
// Labels not present pass through unchanged.
var sportMapping = map[string]types.Sport{
	"Run":      types.SportRun,
	"TrailRun": types.SportTrail,
	"Ride":     types.SportBike,
	"Swim":     types.SportSwim,
}

// sourceLabels is the inverse of sportMapping, used by stores that filter on
// the raw column values.
var sourceLabels = map[types.Sport][]string{
	types.SportRun:   {"Run"},
	types.SportTrail: {"TrailRun"},
	types.SportBike:  {"Ride"},
	types.SportSwim:  {"Swim"},
}

// NormalizeSport converts a raw source label into the normalized vocabulary.
// Unknown labels are passed through as-is so they can still be displayed.
func NormalizeSport(raw string) types.Sport {
	if s, ok := sportMapping[raw]; ok {
		return s
	}
	return types.Sport(raw)
}

// SourceLabels returns the raw labels a store should match for a normalized
// sport. For sports outside the known mapping the sport value itself is the
// only label.
func SourceLabels(sport types.Sport) []string {
	if labels, ok := sourceLabels[sport]; ok {
		return labels
	}
	return []string{string(sport)}
}

// IsRecordEligible reports whether a sport participates in personal-record
// tracking. Only running sports do; rides and swims are tracked for KPIs but
// never produce distance records.
func IsRecordEligible(sport types.Sport) bool {
	return sport == types.SportRun || sport == types.SportTrail
}
