// Package fitfile implements a StreamStore over a directory of FIT files,
// for histories imported from device exports rather than an API. Each
// activity's trace lives in <dir>/<activity_id>.fit.
package fitfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/basetype"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"

	"github.com/stridehq/stride/pkg/types"
)

// StreamStore decodes distance/time traces from FIT activity files.
type StreamStore struct {
	dir string
}

func NewStreamStore(dir string) *StreamStore {
	return &StreamStore{dir: dir}
}

// GetTrace reads the activity's FIT file and returns its record-level
// distance/time samples, times rebased to seconds since the first record.
// A missing file yields an empty trace, matching an activity without
// streams; a file that fails to decode is an error.
func (s *StreamStore) GetTrace(ctx context.Context, activityID string) ([]types.StreamSample, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, activityID+".fit"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fit file for %s: %w", activityID, err)
	}

	dec := decoder.New(bytes.NewReader(data))

	var samples []types.StreamSample
	var start time.Time

	for dec.Next() {
		fitData, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode fit file for %s: %w", activityID, err)
		}

		for _, msg := range fitData.Messages {
			if msg.Num != typedef.MesgNumRecord {
				continue
			}

			record := mesgdef.NewRecord(&msg)
			if record.Timestamp.IsZero() || record.Distance == basetype.Uint32Invalid {
				continue
			}
			if start.IsZero() {
				start = record.Timestamp
			}

			// FIT stores distance in centimetres.
			distanceM := float64(record.Distance) / 100
			timeS := record.Timestamp.Sub(start).Seconds()

			samples = append(samples, types.StreamSample{
				DistanceM: &distanceM,
				TimeS:     &timeS,
			})
		}
	}

	return samples, nil
}
