// Package tui provides the interactive playback screen.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/frame-folders/internal/player"
	"github.com/joe/frame-folders/internal/tui/shared"
)

// Model represents the TUI state
type Model struct {
	ctx    context.Context //nolint:containedctx // bounds the volume watch started from Update
	player *player.Player
	root   string

	spinner     spinner.Model
	activity    *shared.ActivityLog
	frame       player.Frame
	stepped     bool
	tickGen     int
	paused      bool
	waiting     bool
	watchFailed bool // exhausted playback retries on the interval instead
	quitting    bool
	width       int
	now         func() time.Time
}

// wokeMsg is sent when the volume watch returns
type wokeMsg struct {
	Err error
}

// NewModel creates a playback model for the volume at root.
func NewModel(ctx context.Context, p *player.Player, root string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	return Model{
		ctx:      ctx,
		player:   p,
		root:     root,
		spinner:  s,
		activity: shared.NewActivityLog(shared.ActivityLogCapacity),
		width:    shared.DefaultWidth,
		now:      time.Now,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return shared.FrameTickMsg{Time: m.now(), Gen: 0} },
	)
}

// Frame returns the last step's result (for testing)
func (m Model) Frame() player.Frame {
	return m.frame
}

// Paused reports whether playback is paused
func (m Model) Paused() bool {
	return m.paused
}

// Waiting reports whether the model waits for the volume to change
func (m Model) Waiting() bool {
	return m.waiting
}

// Watching reports whether exhausted playback waits for the volume to change
func (m Model) Watching() bool {
	return m.player.CanWait() && !m.watchFailed
}

// Activity returns the activity log entries
func (m Model) Activity() []string {
	return m.activity.Entries()
}

// Run shows the playback screen until the user quits or ctx ends.
func Run(ctx context.Context, p *player.Player, root string) error {
	program := tea.NewProgram(NewModel(ctx, p, root), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := program.Run()
	if err != nil && ctx.Err() == nil {
		return err //nolint:wrapcheck // surfaced unchanged to main
	}

	return nil
}
