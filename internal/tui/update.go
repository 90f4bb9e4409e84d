package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/frame-folders/internal/sequence"
	"github.com/joe/frame-folders/internal/tui/shared"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case shared.FrameTickMsg:
		return m.handleFrameTick(msg)

	case wokeMsg:
		return m.handleWoke(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC, shared.KeyQuit:
		m.quitting = true
		return m, tea.Quit

	case shared.KeyPause:
		m.paused = !m.paused
		if m.paused {
			m.activity.Add(m.now(), "Paused")
		} else {
			m.activity.Add(m.now(), "Resumed")
		}

		return m, nil

	case shared.KeyNext:
		if m.waiting {
			return m, nil
		}

		m = m.step()
		m.activity.Add(m.now(), "Stepped to "+m.frame.Path)

		return m.afterStep()
	}

	return m, nil
}

// handleFrameTick steps unless paused and schedules the next tick of the same chain.
func (m Model) handleFrameTick(msg shared.FrameTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen || m.waiting {
		return m, nil
	}

	if m.paused {
		return m, shared.FrameTickCmd(m.player.Interval(), m.tickGen)
	}

	m = m.step()

	return m.afterStep()
}

func (m Model) handleWoke(msg wokeMsg) (tea.Model, tea.Cmd) {
	m.waiting = false
	m.tickGen++

	if msg.Err != nil {
		m.watchFailed = true
		m.activity.Add(m.now(), "Volume watch stopped: "+msg.Err.Error())

		return m, shared.FrameTickCmd(m.player.Interval(), m.tickGen)
	}

	m.activity.Add(m.now(), "Volume changed")

	return m, shared.FrameTickCmd(0, m.tickGen)
}

// step advances the player and records notable outcomes.
func (m Model) step() Model {
	first := !m.stepped
	previous := m.frame

	m.frame = m.player.Step()
	m.stepped = true

	switch m.frame.Outcome {
	case sequence.OutcomeRolledOver:
		if first || m.frame.State.Folder != previous.State.Folder {
			m.activity.Add(m.now(), fmt.Sprintf("Playing folder %q", m.frame.State.Folder))
		} else {
			m.activity.Add(m.now(), fmt.Sprintf("Restarted folder %q", m.frame.State.Folder))
		}
	case sequence.OutcomeExhausted:
		if first || previous.Outcome != sequence.OutcomeExhausted {
			m.activity.Add(m.now(), "No folder holds a first frame")
		}
	case sequence.OutcomeAdvanced:
	}

	if m.frame.Err != nil {
		m.activity.Add(m.now(), "Problem: "+m.frame.Err.Error())
	}

	return m
}

// afterStep starts a new tick chain, or a volume watch when nothing is playable.
func (m Model) afterStep() (Model, tea.Cmd) {
	m.tickGen++

	if m.frame.Outcome == sequence.OutcomeExhausted && m.Watching() {
		m.waiting = true
		ctx, p := m.ctx, m.player

		return m, func() tea.Msg {
			return wokeMsg{Err: p.Wait(ctx)}
		}
	}

	return m, shared.FrameTickCmd(m.player.Interval(), m.tickGen)
}
