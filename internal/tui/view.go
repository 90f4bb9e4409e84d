package tui

import (
	"strconv"
	"strings"

	"github.com/joe/frame-folders/internal/tui/shared"
)

const labelWidth = 8

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(shared.RenderTitle("frame-folders"))
	b.WriteString("\n")

	b.WriteString(shared.RenderWidgetBox("Now showing", m.renderFrame(), m.width))
	b.WriteString("\n\n")

	b.WriteString(shared.RenderActivityLog("Activity", m.activity.Entries(), shared.ActivityLogEntries))
	b.WriteString("\n\n")

	if m.frame.Err != nil {
		b.WriteString(shared.RenderProblem(m.frame.Err, m.frame.Path, m.width-4))
		b.WriteString("\n\n")
	}

	b.WriteString(shared.RenderDim("space pause • n next • q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderFrame() string {
	pathWidth := m.width - labelWidth - 8

	folder := m.frame.State.Folder
	if folder == "" {
		folder = shared.RenderDim("(volume root)")
	}

	path := shared.RenderDim("-")
	number := shared.RenderDim("-")
	if m.stepped {
		path = shared.PathStyle().Render(shared.TruncatePath(m.frame.Path, pathWidth))
		number = strconv.Itoa(m.frame.State.Number)
	}

	lines := []string{
		shared.RenderField("Volume", shared.TruncatePath(m.root, pathWidth), labelWidth),
		shared.RenderField("Folder", folder, labelWidth),
		shared.RenderField("Frame", number, labelWidth),
		shared.RenderField("Path", path, labelWidth),
		shared.RenderField("Status", m.renderStatus(), labelWidth),
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.waiting:
		return m.spinner.View() + " " + shared.RenderWarning(shared.StateWaiting)
	case m.paused:
		return shared.RenderWarning(shared.StatePaused)
	default:
		return m.spinner.View() + " " + shared.RenderSuccess(shared.StatePlaying) +
			shared.RenderDim(" every "+shared.FormatDuration(m.player.Interval()))
	}
}
