package shared

import (
	"strings"
	"time"
)

// ActivityLog keeps the most recent timestamped events, oldest first.
type ActivityLog struct {
	entries  []string
	capacity int
}

// NewActivityLog creates a log that keeps at most capacity entries (0 = unbounded).
func NewActivityLog(capacity int) *ActivityLog {
	return &ActivityLog{capacity: capacity}
}

// Add records text at time at.
func (l *ActivityLog) Add(at time.Time, text string) {
	l.entries = append(l.entries, at.Format("15:04:05")+" - "+text)

	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Entries returns the kept entries.
func (l *ActivityLog) Entries() []string {
	return l.entries
}

// RenderActivityLog renders a chronological activity log with optional title.
// If maxEntries > 0, only the most recent N entries are shown.
func RenderActivityLog(title string, entries []string, maxEntries int) string {
	var builder strings.Builder

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle != "" {
		builder.WriteString(RenderLabel(trimmedTitle))
		builder.WriteString("\n")

		if len(entries) > 0 {
			builder.WriteString("\n")
		}
	}

	if len(entries) == 0 {
		return builder.String()
	}

	startIdx := 0
	if maxEntries > 0 && maxEntries < len(entries) {
		startIdx = len(entries) - maxEntries
	}

	for i := startIdx; i < len(entries); i++ {
		builder.WriteString("  ")
		builder.WriteString(entries[i])

		if i < len(entries)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
