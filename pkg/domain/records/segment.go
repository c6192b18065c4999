package records

import (
	"math"
	"sort"

	"github.com/stridehq/stride/pkg/types"
)

// Point is one cleaned trace sample: cumulative distance in metres and
// elapsed time in seconds since the start of the activity.
type Point struct {
	CumulativeDistanceM float64
	ElapsedTimeSec      float64
}

// Segment is a contiguous sub-range of a trace whose length matches a target
// distance within tolerance. Indices refer to the cleaned point slice the
// search ran on.
type Segment struct {
	StartIndex     int
	EndIndex       int
	DurationSec    float64
	DistanceM      float64
	StartDistanceM float64
	EndDistanceM   float64
}

// Defaults for SearchOptions. The tolerance matches typical GPS distance
// error over race distances; the start-point cap bounds search cost on long
// 1Hz traces.
const (
	DefaultToleranceM     = 50.0
	DefaultMaxStartPoints = 500
)

// SearchOptions tunes FindBestSegment. Zero values take the defaults, so
// tests can shrink the tolerance or disable stride sampling on tiny traces.
type SearchOptions struct {
	// ToleranceM is the maximum allowed deviation between a segment's actual
	// distance and the target.
	ToleranceM float64

	// MaxStartPoints caps how many start indices are evaluated; starts are
	// sampled at stride len(points)/MaxStartPoints.
	MaxStartPoints int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.ToleranceM == 0 {
		o.ToleranceM = DefaultToleranceM
	}
	if o.MaxStartPoints == 0 {
		o.MaxStartPoints = DefaultMaxStartPoints
	}
	return o
}

// CleanTrace converts raw stream samples into search-ready points. Samples
// with a missing distance or time, or a negative value, are dropped; the
// result is sorted by elapsed time. No interpolation is performed for gaps.
func CleanTrace(samples []types.StreamSample) []Point {
	points := make([]Point, 0, len(samples))
	for _, s := range samples {
		if s.DistanceM == nil || s.TimeS == nil {
			continue
		}
		if *s.DistanceM < 0 || *s.TimeS < 0 {
			continue
		}
		points = append(points, Point{
			CumulativeDistanceM: *s.DistanceM,
			ElapsedTimeSec:      *s.TimeS,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ElapsedTimeSec < points[j].ElapsedTimeSec
	})

	return points
}

// FindBestSegment returns the minimum-duration contiguous segment covering
// targetDistanceM within tolerance, or nil when the trace holds no such
// segment. A nil result is a normal outcome, not an error.
//
// Start indices are sampled at a fixed stride so at most ~MaxStartPoints
// starts are evaluated regardless of trace length; the result is therefore an
// approximation of the true optimum, negligible at 1Hz GPS sampling density
// relative to the distance tolerance. Cumulative distance is assumed
// non-decreasing; GPS jitter that violates this is not corrected and can hide
// candidates.
//
// Ties on duration resolve to the first segment found (lowest start index);
// callers must not rely on a specific winner among exact ties.
func FindBestSegment(points []Point, targetDistanceM float64, opts SearchOptions) *Segment {
	opts = opts.withDefaults()

	if len(points) < 2 || targetDistanceM <= 0 {
		return nil
	}

	// Source data is expected pre-sorted; re-sort only when it is not.
	if !sort.SliceIsSorted(points, func(i, j int) bool {
		return points[i].ElapsedTimeSec < points[j].ElapsedTimeSec
	}) {
		sorted := make([]Point, len(points))
		copy(sorted, points)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ElapsedTimeSec < sorted[j].ElapsedTimeSec
		})
		points = sorted
	}

	stride := len(points) / opts.MaxStartPoints
	if stride < 1 {
		stride = 1
	}

	var best *Segment

	for i := 0; i < len(points)-1; i += stride {
		endTarget := points[i].CumulativeDistanceM + targetDistanceM

		// First index after i whose cumulative distance covers the target.
		offset := sort.Search(len(points)-i-1, func(k int) bool {
			return points[i+1+k].CumulativeDistanceM >= endTarget
		})
		j := i + 1 + offset
		if j >= len(points) {
			// The trace ends before covering the distance from this start;
			// every later start covers even less.
			break
		}

		actual := points[j].CumulativeDistanceM - points[i].CumulativeDistanceM
		if math.Abs(actual-targetDistanceM) > opts.ToleranceM {
			// No fallback to a second-nearest end index.
			continue
		}

		duration := points[j].ElapsedTimeSec - points[i].ElapsedTimeSec
		if duration <= 0 {
			continue
		}

		if best == nil || duration < best.DurationSec {
			best = &Segment{
				StartIndex:     i,
				EndIndex:       j,
				DurationSec:    duration,
				DistanceM:      actual,
				StartDistanceM: points[i].CumulativeDistanceM,
				EndDistanceM:   points[j].CumulativeDistanceM,
			}
		}
	}

	return best
}
