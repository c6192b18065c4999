package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/domain/activity"
	"github.com/stridehq/stride/pkg/types"
)

const activityColumns = "id, name, sport_type, distance, moving_time, total_elevation_gain, start_date"

// ActivityStore reads activity summaries from the activites table.
type ActivityStore struct {
	db *sqlx.DB
}

func NewActivityStore(db *sqlx.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// GetActivities returns summaries matching the filter, most recent first.
// Sport filters are expanded to the raw source labels stored in the table.
func (s *ActivityStore) GetActivities(ctx context.Context, filter shared.ActivityFilter) ([]types.ActivitySummary, error) {
	var (
		clauses []string
		args    []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.Sports) > 0 {
		var labels []string
		for _, sport := range filter.Sports {
			labels = append(labels, activity.SourceLabels(sport)...)
		}
		clauses = append(clauses, fmt.Sprintf("sport_type = ANY(%s)", arg(pq.Array(labels))))
	}
	if filter.MinDistanceKm > 0 {
		clauses = append(clauses, fmt.Sprintf("distance >= %s", arg(filter.MinDistanceKm)))
	}
	if filter.Since != nil {
		clauses = append(clauses, fmt.Sprintf("start_date >= %s", arg(*filter.Since)))
	}
	if filter.Until != nil {
		clauses = append(clauses, fmt.Sprintf("start_date <= %s", arg(*filter.Until)))
	}

	query := "SELECT " + activityColumns + " FROM activites"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_date DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %s", arg(filter.Limit))
	}

	activities := []types.ActivitySummary{}
	if err := s.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("select activities: %w", err)
	}
	return activities, nil
}

// GetActivity returns a single activity summary by id.
func (s *ActivityStore) GetActivity(ctx context.Context, id string) (*types.ActivitySummary, error) {
	summary := &types.ActivitySummary{}
	query := "SELECT " + activityColumns + " FROM activites WHERE id = $1"

	if err := s.db.GetContext(ctx, summary, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("activity %s: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("select activity %s: %w", id, err)
	}
	return summary, nil
}
