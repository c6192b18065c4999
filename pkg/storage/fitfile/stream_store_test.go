package fitfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
)

// writeFitFile encodes a minimal activity FIT file with one record every
// second at the given speed.
func writeFitFile(t *testing.T, path string, seconds int, metersPerSec float64) {
	t.Helper()

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	fit := &proto.FIT{}

	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(start)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))

	for i := 0; i <= seconds; i++ {
		record := mesgdef.NewRecord(nil).
			SetTimestamp(start.Add(time.Duration(i) * time.Second)).
			SetDistance(uint32(metersPerSec * float64(i) * 100)) // centimetres
		fit.Messages = append(fit.Messages, record.ToMesg(nil))
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fit file: %v", err)
	}
	defer f.Close()

	if err := encoder.New(f).Encode(fit); err != nil {
		t.Fatalf("encode fit file: %v", err)
	}
}

func TestStreamStoreGetTrace(t *testing.T) {
	dir := t.TempDir()
	writeFitFile(t, filepath.Join(dir, "a1.fit"), 60, 3.0)

	store := NewStreamStore(dir)

	samples, err := store.GetTrace(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetTrace error: %v", err)
	}
	if len(samples) != 61 {
		t.Fatalf("len(samples) = %d, want 61", len(samples))
	}

	first, last := samples[0], samples[len(samples)-1]
	if first.TimeS == nil || *first.TimeS != 0 {
		t.Errorf("first sample time = %v, want 0", first.TimeS)
	}
	if last.DistanceM == nil || *last.DistanceM != 180 {
		t.Errorf("last sample distance = %v, want 180", last.DistanceM)
	}
	if last.TimeS == nil || *last.TimeS != 60 {
		t.Errorf("last sample time = %v, want 60", last.TimeS)
	}
}

func TestStreamStoreMissingFile(t *testing.T) {
	store := NewStreamStore(t.TempDir())

	samples, err := store.GetTrace(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetTrace error: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("len(samples) = %d, want 0 for missing file", len(samples))
	}
}

func TestStreamStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.fit"), []byte("not a fit file"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStreamStore(dir)
	if _, err := store.GetTrace(context.Background(), "bad"); err == nil {
		t.Error("expected error for corrupt file")
	}
}
