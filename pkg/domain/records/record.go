package records

import (
	"time"

	"github.com/stridehq/stride/pkg/types"
)

// NewRecord converts a winning segment into the persisted record shape.
// Pace is computed against the nominal target distance, not the segment's
// actual distance, so stored paces are comparable across records.
func NewRecord(target TargetDistance, seg *Segment, act types.ActivitySummary, now time.Time) types.Record {
	return types.Record{
		TargetKey:        target.Key,
		DistanceKm:       target.Km,
		TimeSeconds:      int(seg.DurationSec),
		PaceSecondsPerKm: seg.DurationSec / target.Km,
		ActivityID:       act.ID,
		ActivityName:     act.Name,
		ActivityDate:     act.StartDate,
		StartKm:          seg.StartDistanceM / 1000,
		EndKm:            seg.EndDistanceM / 1000,
		UpdatedAt:        now,
	}
}
