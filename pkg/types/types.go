// Package types holds the plain data types shared across the module.
package types

import "time"

// Sport is the normalized sport vocabulary used throughout the module.
// Source-specific labels (e.g. "TrailRun") are mapped onto these values by
// the activity package before any record logic runs.
type Sport string

const (
	SportRun   Sport = "Run"
	SportTrail Sport = "Trail"
	SportBike  Sport = "Bike"
	SportSwim  Sport = "Swim"
)

// ActivitySummary is the per-activity metadata needed by the record and KPI
// paths. Distances are kilometres, moving time is minutes, matching the
// upstream activity table.
type ActivitySummary struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	SportType      string    `db:"sport_type"` // raw source label, normalize before comparing
	DistanceKm     float64   `db:"distance"`
	MovingTimeMin  float64   `db:"moving_time"`
	ElevationGainM float64   `db:"total_elevation_gain"`
	StartDate      time.Time `db:"start_date"`
}

// AverageSpeedKmh derives the mean speed used to rank record candidates.
// Returns 0 for activities without a usable moving time.
func (a ActivitySummary) AverageSpeedKmh() float64 {
	if a.MovingTimeMin <= 0 {
		return 0
	}
	return a.DistanceKm / (a.MovingTimeMin / 60)
}

// StreamSample is one raw GPS/sensor sample of an activity trace as delivered
// by a StreamStore. Either field may be missing; samples with missing values
// are dropped before any segment search.
type StreamSample struct {
	DistanceM *float64
	TimeS     *float64
}

// Record is the persisted best-known result for one target distance.
// TimeSeconds is the segment duration; StartKm/EndKm locate the segment
// within the source activity's trace.
type Record struct {
	TargetKey        string    `db:"distance_key"`
	DistanceKm       float64   `db:"distance_km"`
	TimeSeconds      int       `db:"time_seconds"`
	PaceSecondsPerKm float64   `db:"pace_seconds_per_km"`
	ActivityID       string    `db:"activity_id"`
	ActivityName     string    `db:"activity_name"`
	ActivityDate     time.Time `db:"activity_date"`
	StartKm          float64   `db:"start_km"`
	EndKm            float64   `db:"end_km"`
	UpdatedAt        time.Time `db:"updated_at"`
}
