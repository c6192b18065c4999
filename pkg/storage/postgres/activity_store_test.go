package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/stridehq/stride/pkg"
	"github.com/stridehq/stride/pkg/types"
)

func activityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "sport_type", "distance", "moving_time", "total_elevation_gain", "start_date",
	})
}

func TestActivityStoreGetActivities(t *testing.T) {
	t.Run("expands sport filter to source labels", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewActivityStore(db)

		rows := activityRows().
			AddRow("1", "Sunday Long Run", "Run", 18.2, 95.0, 210.0, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)).
			AddRow("2", "Col du Tourmalet", "TrailRun", 24.0, 180.0, 1400.0, time.Date(2026, 2, 22, 9, 0, 0, 0, time.UTC))

		mock.ExpectQuery(`SELECT (.+) FROM activites WHERE sport_type = ANY\((.+)\) AND distance >= (.+) ORDER BY start_date DESC LIMIT`).
			WillReturnRows(rows)

		activities, err := store.GetActivities(context.Background(), shared.ActivityFilter{
			Sports:        []types.Sport{types.SportRun, types.SportTrail},
			MinDistanceKm: 5.0,
			Limit:         100,
		})
		require.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, "TrailRun", activities[1].SportType)
	})

	t.Run("no filter selects everything ordered by date", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewActivityStore(db)

		mock.ExpectQuery(`SELECT (.+) FROM activites ORDER BY start_date DESC`).
			WillReturnRows(activityRows())

		activities, err := store.GetActivities(context.Background(), shared.ActivityFilter{})
		require.NoError(t, err)
		assert.Empty(t, activities)
	})
}

func TestActivityStoreGetActivity(t *testing.T) {
	t.Run("returns summary by id", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewActivityStore(db)

		rows := activityRows().
			AddRow("7", "Intervals", "Run", 8.4, 42.0, 30.0, time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC))

		mock.ExpectQuery(`SELECT (.+) FROM activites WHERE id`).
			WithArgs("7").
			WillReturnRows(rows)

		summary, err := store.GetActivity(context.Background(), "7")
		require.NoError(t, err)
		assert.Equal(t, "Intervals", summary.Name)
		assert.Equal(t, 8.4, summary.DistanceKm)
	})

	t.Run("missing activity maps to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewActivityStore(db)

		mock.ExpectQuery(`SELECT (.+) FROM activites WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := store.GetActivity(context.Background(), "missing")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
