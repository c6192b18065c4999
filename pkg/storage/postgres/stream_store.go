package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stridehq/stride/pkg/types"
)

// StreamStore reads distance/time traces from the streams table.
type StreamStore struct {
	db *sqlx.DB
}

func NewStreamStore(db *sqlx.DB) *StreamStore {
	return &StreamStore{db: db}
}

type streamRow struct {
	DistanceM sql.NullFloat64 `db:"distance_m"`
	TimeS     sql.NullFloat64 `db:"time_s"`
}

// GetTrace returns the raw trace ordered by time ascending. Null columns map
// to missing sample values; an activity without streams yields an empty
// slice.
func (s *StreamStore) GetTrace(ctx context.Context, activityID string) ([]types.StreamSample, error) {
	rows := []streamRow{}
	query := "SELECT distance_m, time_s FROM streams WHERE activity_id = $1 ORDER BY time_s"

	if err := s.db.SelectContext(ctx, &rows, query, activityID); err != nil {
		return nil, fmt.Errorf("select streams for %s: %w", activityID, err)
	}

	samples := make([]types.StreamSample, 0, len(rows))
	for _, row := range rows {
		sample := types.StreamSample{}
		if row.DistanceM.Valid {
			d := row.DistanceM.Float64
			sample.DistanceM = &d
		}
		if row.TimeS.Valid {
			t := row.TimeS.Float64
			sample.TimeS = &t
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
