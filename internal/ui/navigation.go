package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mux-launcher/internal/logging/events"
)

func (m *Model) moveCursor(delta int) {
	m.session.MoveBy(delta)
	events.UI.Cursor(m.session.ActiveIndex, m.session.TopRow)
}

// launchRow selects the entry on viewport row and launches it. Rows past
// the end of the list are ignored.
func (m *Model) launchRow(row int) tea.Cmd {
	index := m.session.RowAt(row)
	if index < 0 {
		return nil
	}
	m.session.Select(index)
	return m.launchActive()
}

// launchActive dispatches the entry under the cursor and quits. The
// notification is fire and forget; dispatch errors are logged, not shown.
func (m *Model) launchActive() tea.Cmd {
	entry, ok := m.session.Active()
	if !ok {
		return nil
	}
	events.UI.Launch(m.session.ActiveIndex, entry.Label, entry.Action.String())
	if m.notifier != nil {
		m.notifier.Notify(m.paneID, entry.Action)
	}
	m.dispatched = true
	return tea.Quit
}

func (m *Model) cancel(reason string) tea.Cmd {
	events.UI.Cancel(reason)
	return tea.Quit
}

// handleMouseMsg implements wheel scrolling, hover selection, and click to
// launch. Any button other than the left one cancels the overlay.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.session.Scroll(-1)
		events.UI.Cursor(m.session.ActiveIndex, m.session.TopRow)
		return nil
	case tea.MouseButtonWheelDown:
		m.session.Scroll(1)
		events.UI.Cursor(m.session.ActiveIndex, m.session.TopRow)
		return nil
	}
	switch ev.Action {
	case tea.MouseActionMotion:
		if index := m.session.RowAt(ev.Y - entryRowOffset); index >= 0 {
			if m.session.Select(index) {
				events.UI.Cursor(m.session.ActiveIndex, m.session.TopRow)
			}
		}
		return nil
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			return m.launchRow(ev.Y - entryRowOffset)
		}
		return m.cancel("mouse:button")
	}
	return nil
}
