package types

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{3000, "50:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
		{65, "1:05"},
		{-10, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		secondsPerKm float64
		want         string
	}{
		{300, "5:00"},
		{288, "4:48"},
		{299.9, "4:59"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatPace(tt.secondsPerKm); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.secondsPerKm, got, tt.want)
		}
	}
}

func TestAverageSpeedKmh(t *testing.T) {
	a := ActivitySummary{DistanceKm: 10, MovingTimeMin: 50}
	if got := a.AverageSpeedKmh(); got != 12 {
		t.Errorf("AverageSpeedKmh() = %v, want 12", got)
	}

	b := ActivitySummary{DistanceKm: 10}
	if got := b.AverageSpeedKmh(); got != 0 {
		t.Errorf("AverageSpeedKmh() with zero time = %v, want 0", got)
	}
}
