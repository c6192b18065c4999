package kpi

import (
	"context"
	"testing"
	"time"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/testing/mocks"
	"github.com/stridehq/stride/pkg/types"
)

func TestComputeSummary(t *testing.T) {
	store := &mocks.MockActivityStore{
		GetActivitiesFunc: func(ctx context.Context, filter shared.ActivityFilter) ([]types.ActivitySummary, error) {
			return []types.ActivitySummary{
				{SportType: "Run", DistanceKm: 10.5, MovingTimeMin: 55, ElevationGainM: 80},
				{SportType: "Run", DistanceKm: 8.0, MovingTimeMin: 40, ElevationGainM: 60},
				{SportType: "TrailRun", DistanceKm: 21.0, MovingTimeMin: 150, ElevationGainM: 900},
				{SportType: "Ride", DistanceKm: 60.0, MovingTimeMin: 120, ElevationGainM: 500},
				{SportType: "Swim", DistanceKm: 2.0, MovingTimeMin: 45},
			}, nil
		},
	}

	summary, err := NewService(store).Compute(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	if summary.TotalKmRun != 18.5 {
		t.Errorf("TotalKmRun = %v, want 18.5", summary.TotalKmRun)
	}
	if summary.TotalKmTrail != 21.0 {
		t.Errorf("TotalKmTrail = %v, want 21", summary.TotalKmTrail)
	}
	if summary.TotalKmRunTrail != 39.5 {
		t.Errorf("TotalKmRunTrail = %v, want 39.5", summary.TotalKmRunTrail)
	}
	if summary.TotalKmBike != 60.0 {
		t.Errorf("TotalKmBike = %v, want 60", summary.TotalKmBike)
	}
	if summary.TotalKmSwim != 2.0 {
		t.Errorf("TotalKmSwim = %v, want 2", summary.TotalKmSwim)
	}
	if summary.TotalElevationTrailM != 900 {
		t.Errorf("TotalElevationTrailM = %v, want 900", summary.TotalElevationTrailM)
	}
	// 55+40+150+120+45 = 410 minutes.
	if summary.TotalHours != 6.83 {
		t.Errorf("TotalHours = %v, want 6.83", summary.TotalHours)
	}
}

func TestComputePassesRangeToStore(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var gotFilter shared.ActivityFilter
	store := &mocks.MockActivityStore{
		GetActivitiesFunc: func(ctx context.Context, filter shared.ActivityFilter) ([]types.ActivitySummary, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	if _, err := NewService(store).Compute(context.Background(), &since, &until); err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	if gotFilter.Since == nil || !gotFilter.Since.Equal(since) {
		t.Errorf("filter.Since = %v, want %v", gotFilter.Since, since)
	}
	if gotFilter.Until == nil || !gotFilter.Until.Equal(until) {
		t.Errorf("filter.Until = %v, want %v", gotFilter.Until, until)
	}
}
