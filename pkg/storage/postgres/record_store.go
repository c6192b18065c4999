package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stridehq/stride/pkg/types"
)

// RecordStore persists the best record per target distance in the records
// table, one row per distance key.
type RecordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

const recordColumns = "distance_key, distance_km, time_seconds, pace_seconds_per_km, activity_id, activity_name, activity_date, start_km, end_km, updated_at"

// Get returns the stored record for a target key, or nil when none exists.
func (s *RecordStore) Get(ctx context.Context, targetKey string) (*types.Record, error) {
	record := &types.Record{}
	query := "SELECT " + recordColumns + " FROM records WHERE distance_key = $1"

	if err := s.db.GetContext(ctx, record, query, targetKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select record %q: %w", targetKey, err)
	}
	return record, nil
}

// Upsert writes the record only when no row exists for the key or the new
// time is strictly faster. The condition is evaluated inside the statement,
// so concurrent upserts for the same key cannot regress the stored record.
func (s *RecordStore) Upsert(ctx context.Context, record types.Record) (bool, error) {
	query := `
		INSERT INTO records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (distance_key)
		DO UPDATE SET
			distance_km = EXCLUDED.distance_km,
			time_seconds = EXCLUDED.time_seconds,
			pace_seconds_per_km = EXCLUDED.pace_seconds_per_km,
			activity_id = EXCLUDED.activity_id,
			activity_name = EXCLUDED.activity_name,
			activity_date = EXCLUDED.activity_date,
			start_km = EXCLUDED.start_km,
			end_km = EXCLUDED.end_km,
			updated_at = NOW()
		WHERE records.time_seconds > EXCLUDED.time_seconds
	`

	res, err := s.db.ExecContext(ctx, query,
		record.TargetKey,
		record.DistanceKm,
		record.TimeSeconds,
		record.PaceSecondsPerKm,
		record.ActivityID,
		record.ActivityName,
		record.ActivityDate,
		record.StartKm,
		record.EndKm,
	)
	if err != nil {
		return false, fmt.Errorf("upsert record %q: %w", record.TargetKey, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upsert record %q: rows affected: %w", record.TargetKey, err)
	}
	return affected > 0, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM records"); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}
