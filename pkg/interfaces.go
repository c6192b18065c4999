package shared

import (
	"context"
	"errors"
	"time"

	"github.com/stridehq/stride/pkg/types"
)

// ErrNotFound is returned by stores when a requested row does not exist.
// Absent records are a normal domain outcome, not a failure; callers that
// treat "missing" as nil should check for this sentinel.
var ErrNotFound = errors.New("not found")

// ActivityFilter narrows an ActivityStore query. Zero values mean "no
// constraint". Sports are matched against the normalized vocabulary, not the
// raw source labels.
type ActivityFilter struct {
	Sports        []types.Sport
	MinDistanceKm float64
	Since         *time.Time
	Until         *time.Time
	Limit         int
}

// --- Persistence Interfaces ---

// ActivityStore supplies activity metadata. Results are ordered by start date
// descending (most recent first).
type ActivityStore interface {
	GetActivities(ctx context.Context, filter ActivityFilter) ([]types.ActivitySummary, error)
	GetActivity(ctx context.Context, id string) (*types.ActivitySummary, error)
}

// StreamStore supplies, per activity, the ordered distance/time trace.
// An activity without streams yields an empty slice, not an error.
type StreamStore interface {
	GetTrace(ctx context.Context, activityID string) ([]types.StreamSample, error)
}

// RecordStore is the durable best-record-per-target-distance storage.
// The record logic is its sole writer.
type RecordStore interface {
	// Get returns the stored record for a target key, or nil when none exists.
	Get(ctx context.Context, targetKey string) (*types.Record, error)

	// Upsert writes the record only if no record exists for its target key or
	// the new TimeSeconds is strictly smaller than the stored one. It reports
	// whether the write was applied. The condition is evaluated atomically so
	// concurrent callers cannot regress a record.
	Upsert(ctx context.Context, record types.Record) (bool, error)

	// Count returns the number of stored records, used as the initialization
	// guard.
	Count(ctx context.Context) (int, error)
}
