package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameTickMsg is sent when the next frame is due. Gen identifies the tick chain
// that produced it so superseded chains can be dropped.
type FrameTickMsg struct {
	Time time.Time
	Gen  int
}

// FrameTickCmd returns a command that sends a FrameTickMsg after interval
func FrameTickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameTickMsg{Time: t, Gen: gen}
	})
}
