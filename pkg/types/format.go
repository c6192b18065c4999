package types

import "fmt"

// FormatDuration renders a duration in seconds as H:MM:SS, or MM:SS when
// under an hour (the display format used for records).
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatPace renders a pace in seconds per kilometre as M:SS.
func FormatPace(secondsPerKm float64) string {
	if secondsPerKm < 0 {
		secondsPerKm = 0
	}
	total := int(secondsPerKm)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
