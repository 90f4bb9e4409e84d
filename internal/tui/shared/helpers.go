package shared

import (
	"fmt"
	"time"
)

// FormatDuration formats duration into human-readable format (e.g., "2m 30s").
// Durations under a second keep their milliseconds.
func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%dms", duration.Milliseconds())
	}

	duration = duration.Round(time.Second)
	hours := duration / time.Hour
	duration %= time.Hour
	minutes := duration / time.Minute
	duration %= time.Minute
	seconds := duration / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// TruncatePath shortens path to at most maxWidth characters, keeping its end.
func TruncatePath(path string, maxWidth int) string {
	const ellipsis = "..."

	if maxWidth <= 0 || len(path) <= maxWidth {
		return path
	}

	if maxWidth <= len(ellipsis) {
		return path[len(path)-maxWidth:]
	}

	return ellipsis + path[len(path)-(maxWidth-len(ellipsis)):]
}
