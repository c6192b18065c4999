package records

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/domain/activity"
	"github.com/stridehq/stride/pkg/types"
)

// Synchronizer owns the persisted record-per-distance state. It is the sole
// writer of the record store; records only ever improve, never regress.
type Synchronizer struct {
	aggregator *Aggregator
	activities shared.ActivityStore
	streams    shared.StreamStore
	records    shared.RecordStore
	logger     *slog.Logger
	search     SearchOptions
}

// NewSynchronizer wires a synchronizer (and its aggregator) over the given
// stores.
func NewSynchronizer(activities shared.ActivityStore, streams shared.StreamStore, records shared.RecordStore, logger *slog.Logger, opts AggregatorOptions) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		aggregator: NewAggregator(activities, streams, logger, opts),
		activities: activities,
		streams:    streams,
		records:    records,
		logger:     logger.With("component", "record-synchronizer"),
		search:     opts.withDefaults().Search,
	}
}

// InitializeRecords recomputes every record from the full eligible history
// and upserts the results. Safe to re-run: it recomputes from the same
// history and the conditional upsert never replaces a record with a slower
// one.
func (s *Synchronizer) InitializeRecords(ctx context.Context) (map[string]*types.Record, error) {
	logger := s.logger.With("run_id", uuid.NewString())
	logger.Info("initializing records from activity history")

	recs, err := s.aggregator.ComputeAllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute records: %w", err)
	}

	stored := 0
	for _, target := range Targets {
		rec := recs[target.Key]
		if rec == nil {
			continue
		}
		if _, err := s.records.Upsert(ctx, *rec); err != nil {
			return nil, fmt.Errorf("upsert record %q: %w", target.Key, err)
		}
		stored++
	}

	logger.Info("records initialized", "stored", stored)
	return recs, nil
}

// CheckAndUpdateRecordWithActivity checks a single newly ingested activity
// against the stored records and upserts any it beats. It returns the target
// keys whose records were broken. Unusable activities (wrong sport, too
// short, no usable trace) return no keys and no error; record store failures
// surface as errors.
func (s *Synchronizer) CheckAndUpdateRecordWithActivity(ctx context.Context, activityID string, summary types.ActivitySummary) ([]string, error) {
	sport := activity.NormalizeSport(summary.SportType)
	if !activity.IsRecordEligible(sport) {
		return nil, nil
	}
	if summary.DistanceKm < MinTargetKm {
		return nil, nil
	}

	samples, err := s.streams.GetTrace(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("fetch trace for %s: %w", activityID, err)
	}
	points := CleanTrace(samples)
	if len(points) < 2 {
		s.logger.Debug("activity has no usable trace", "activity_id", activityID, "samples", len(samples))
		return nil, nil
	}

	logger := s.logger.With("run_id", uuid.NewString(), "activity_id", activityID)

	var broken []string
	for _, target := range Targets {
		if summary.DistanceKm < target.Km {
			continue
		}

		seg := FindBestSegment(points, target.Meters, s.search)
		if seg == nil {
			continue
		}

		rec := NewRecord(target, seg, summary, time.Now().UTC())
		applied, err := s.records.Upsert(ctx, rec)
		if err != nil {
			return broken, fmt.Errorf("upsert record %q: %w", target.Key, err)
		}
		if applied {
			broken = append(broken, target.Key)
			logger.Info("new record",
				"target", target.Key,
				"time", types.FormatDuration(rec.TimeSeconds),
				"pace", types.FormatPace(rec.PaceSecondsPerKm),
			)
		}
	}

	return broken, nil
}

// EnsureRecordsInitialized initializes the record store when it is empty and
// is a no-op otherwise. It reports whether an initialization ran.
func (s *Synchronizer) EnsureRecordsInitialized(ctx context.Context) (bool, error) {
	count, err := s.records.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count records: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	s.logger.Info("record store empty, initializing")
	if _, err := s.InitializeRecords(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// GetAllRecords reads the stored record for every target key. Keys without a
// record map to nil; missing records are never an error.
func (s *Synchronizer) GetAllRecords(ctx context.Context) (map[string]*types.Record, error) {
	records := make(map[string]*types.Record, len(Targets))
	for _, target := range Targets {
		rec, err := s.records.Get(ctx, target.Key)
		if err != nil {
			return nil, fmt.Errorf("get record %q: %w", target.Key, err)
		}
		records[target.Key] = rec
	}
	return records, nil
}

// EnsureInitializedAndGetRecords is the read path used by the reporting
// layer: initialize on first use, then return all records.
func (s *Synchronizer) EnsureInitializedAndGetRecords(ctx context.Context) (map[string]*types.Record, error) {
	if _, err := s.EnsureRecordsInitialized(ctx); err != nil {
		return nil, err
	}
	return s.GetAllRecords(ctx)
}

// OnNewActivity is the ingestion hook: invoked after an activity and its
// trace have been stored, it loads the summary and runs the incremental
// record check.
func (s *Synchronizer) OnNewActivity(ctx context.Context, activityID string) ([]string, error) {
	summary, err := s.activities.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("load activity %s: %w", activityID, err)
	}
	return s.CheckAndUpdateRecordWithActivity(ctx, activityID, *summary)
}
