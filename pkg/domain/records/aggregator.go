package records

import (
	"context"
	"log/slog"
	"sort"
	"time"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/domain/activity"
	"github.com/stridehq/stride/pkg/types"
)

// Candidate pruning defaults. A record is assumed to live among the most
// recent or the fastest-paced activities; both caps are tunable through
// AggregatorOptions.
const (
	DefaultRecencyCap   = 100
	DefaultSpeedRankCap = 20
)

// AggregatorOptions tunes the candidate pruning and the underlying segment
// search. Zero values take the documented defaults.
type AggregatorOptions struct {
	// RecencyCap bounds the overall candidate pool to the N most recent
	// eligible activities.
	RecencyCap int

	// SpeedRankCap bounds, per target distance, how many of the
	// fastest-average-pace candidates have their traces searched.
	SpeedRankCap int

	Search SearchOptions
}

func (o AggregatorOptions) withDefaults() AggregatorOptions {
	if o.RecencyCap == 0 {
		o.RecencyCap = DefaultRecencyCap
	}
	if o.SpeedRankCap == 0 {
		o.SpeedRankCap = DefaultSpeedRankCap
	}
	return o
}

// TargetResult is the per-target outcome of a full aggregation: the winning
// record (nil when no candidate produced a matching segment) plus per-
// candidate accounting so callers and tests can distinguish "no match" from
// "skipped for bad data".
type TargetResult struct {
	Record  *types.Record
	Matched int
	NoMatch int
	Skipped int
}

// Aggregator drives the segment search across a pool of candidate activities
// to find the global best segment per target distance.
type Aggregator struct {
	activities shared.ActivityStore
	streams    shared.StreamStore
	logger     *slog.Logger
	opts       AggregatorOptions
}

// NewAggregator wires an aggregator over the given stores.
func NewAggregator(activities shared.ActivityStore, streams shared.StreamStore, logger *slog.Logger, opts AggregatorOptions) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		activities: activities,
		streams:    streams,
		logger:     logger.With("component", "record-aggregator"),
		opts:       opts.withDefaults(),
	}
}

// CandidatePool fetches the overall candidate pool: record-eligible sports,
// at least the shortest target distance long, most recent first, capped at
// RecencyCap.
func (a *Aggregator) CandidatePool(ctx context.Context) ([]types.ActivitySummary, error) {
	return a.activities.GetActivities(ctx, shared.ActivityFilter{
		Sports:        []types.Sport{types.SportRun, types.SportTrail},
		MinDistanceKm: MinTargetKm,
		Limit:         a.opts.RecencyCap,
	})
}

// ComputeRecords runs the segment search across the given candidates for
// every target distance. Per-candidate fetch or data problems are counted and
// skipped, never aborting the batch; a target with no eligible candidates
// yields a nil Record.
func (a *Aggregator) ComputeRecords(ctx context.Context, candidates []types.ActivitySummary) map[string]TargetResult {
	// Traces are fetched lazily and reused across targets within this run.
	traces := make(map[string][]Point)
	unusable := make(map[string]bool)

	fetch := func(act types.ActivitySummary) []Point {
		if unusable[act.ID] {
			return nil
		}
		if points, ok := traces[act.ID]; ok {
			return points
		}
		samples, err := a.streams.GetTrace(ctx, act.ID)
		if err != nil {
			a.logger.Warn("skipping candidate, trace fetch failed", "activity_id", act.ID, "error", err)
			unusable[act.ID] = true
			return nil
		}
		points := CleanTrace(samples)
		if len(points) < 2 {
			a.logger.Debug("skipping candidate, trace unusable", "activity_id", act.ID, "samples", len(samples))
			unusable[act.ID] = true
			return nil
		}
		traces[act.ID] = points
		return points
	}

	results := make(map[string]TargetResult, len(Targets))

	for _, target := range Targets {
		var eligible []types.ActivitySummary
		for _, c := range candidates {
			if !activity.IsRecordEligible(activity.NormalizeSport(c.SportType)) {
				continue
			}
			if c.DistanceKm >= target.Km {
				eligible = append(eligible, c)
			}
		}

		// Fastest average pace first; a fast overall activity is the most
		// likely home of a fast sub-segment.
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].AverageSpeedKmh() > eligible[j].AverageSpeedKmh()
		})
		if len(eligible) > a.opts.SpeedRankCap {
			eligible = eligible[:a.opts.SpeedRankCap]
		}

		result := TargetResult{}
		var bestSeg *Segment
		var bestAct types.ActivitySummary

		for _, c := range eligible {
			points := fetch(c)
			if points == nil {
				result.Skipped++
				continue
			}

			seg := FindBestSegment(points, target.Meters, a.opts.Search)
			if seg == nil {
				result.NoMatch++
				continue
			}
			result.Matched++

			if bestSeg == nil || seg.DurationSec < bestSeg.DurationSec {
				bestSeg = seg
				bestAct = c
			}
		}

		if bestSeg != nil {
			rec := NewRecord(target, bestSeg, bestAct, time.Now().UTC())
			result.Record = &rec
		}

		a.logger.Debug("target aggregated",
			"target", target.Key,
			"candidates", len(eligible),
			"matched", result.Matched,
			"no_match", result.NoMatch,
			"skipped", result.Skipped,
		)

		results[target.Key] = result
	}

	return results
}

// ComputeAllRecords fetches the candidate pool and aggregates every target,
// returning an entry for each of the fixed target keys (nil when no record
// could be computed).
func (a *Aggregator) ComputeAllRecords(ctx context.Context) (map[string]*types.Record, error) {
	candidates, err := a.CandidatePool(ctx)
	if err != nil {
		return nil, err
	}

	results := a.ComputeRecords(ctx, candidates)

	records := make(map[string]*types.Record, len(Targets))
	for _, target := range Targets {
		records[target.Key] = results[target.Key].Record
	}
	return records, nil
}
