// Package kpi computes the per-sport summary totals shown on the dashboard.
package kpi

import (
	"context"
	"math"
	"time"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/domain/activity"
	"github.com/stridehq/stride/pkg/types"
)

// Summary holds the global KPIs over a date range. Distances are kilometres,
// elevation is metres, rounded to 2 decimals.
type Summary struct {
	TotalKmRun      float64 `json:"total_km_run"`
	TotalKmTrail    float64 `json:"total_km_trail"`
	TotalKmRunTrail float64 `json:"total_km_run_trail"`
	TotalKmBike     float64 `json:"total_km_bike"`
	TotalKmSwim     float64 `json:"total_km_swim"`

	TotalElevationRunM   float64 `json:"total_dplus_run"`
	TotalElevationTrailM float64 `json:"total_dplus_trail"`
	TotalElevationBikeM  float64 `json:"total_dplus_bike"`

	TotalHours float64 `json:"total_hours"`
}

// Service computes KPI summaries from the activity store.
type Service struct {
	activities shared.ActivityStore
}

func NewService(activities shared.ActivityStore) *Service {
	return &Service{activities: activities}
}

// Compute aggregates all activities within the optional [since, until] range.
func (s *Service) Compute(ctx context.Context, since, until *time.Time) (*Summary, error) {
	activities, err := s.activities.GetActivities(ctx, shared.ActivityFilter{
		Since: since,
		Until: until,
	})
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, a := range activities {
		switch activity.NormalizeSport(a.SportType) {
		case types.SportRun:
			summary.TotalKmRun += a.DistanceKm
			summary.TotalElevationRunM += a.ElevationGainM
		case types.SportTrail:
			summary.TotalKmTrail += a.DistanceKm
			summary.TotalElevationTrailM += a.ElevationGainM
		case types.SportBike:
			summary.TotalKmBike += a.DistanceKm
			summary.TotalElevationBikeM += a.ElevationGainM
		case types.SportSwim:
			summary.TotalKmSwim += a.DistanceKm
		}
		summary.TotalHours += a.MovingTimeMin / 60
	}
	summary.TotalKmRunTrail = summary.TotalKmRun + summary.TotalKmTrail

	summary.TotalKmRun = round2(summary.TotalKmRun)
	summary.TotalKmTrail = round2(summary.TotalKmTrail)
	summary.TotalKmRunTrail = round2(summary.TotalKmRunTrail)
	summary.TotalKmBike = round2(summary.TotalKmBike)
	summary.TotalKmSwim = round2(summary.TotalKmSwim)
	summary.TotalElevationRunM = round2(summary.TotalElevationRunM)
	summary.TotalElevationTrailM = round2(summary.TotalElevationTrailM)
	summary.TotalElevationBikeM = round2(summary.TotalElevationBikeM)
	summary.TotalHours = round2(summary.TotalHours)

	return summary, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
