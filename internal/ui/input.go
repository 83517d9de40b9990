package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mux-launcher/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "ctrl+g", "esc":
		return m.cancel("key:" + keyMsg.String())
	case "enter":
		return m.launchActive()
	case "up", "ctrl+p":
		m.moveCursor(-1)
		return nil
	case "down", "ctrl+n":
		m.moveCursor(1)
		return nil
	}
	if m.session.Filtering {
		return m.handleFilteringKey(keyMsg)
	}
	return m.handleNavigationKey(keyMsg)
}

// handleNavigationKey handles keys that only mean something outside of
// filtering mode: vi motions, digit quick select, the filter trigger, and q
// to quit.
func (m *Model) handleNavigationKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.cancel("key:q")
	case "k":
		m.moveCursor(-1)
		return nil
	case "j":
		m.moveCursor(1)
		return nil
	case "/":
		m.session.EnterFiltering()
		m.filterCursorDirty = true
		events.Filter.Enter()
		return nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '1' && r <= '9' {
			return m.launchRow(int(r - '1'))
		}
	}
	return nil
}

// handleFilteringKey routes everything else to the filter text while the
// fuzzy prompt is up.
func (m *Model) handleFilteringKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		left := m.session.PopFilter()
		m.filterCursorDirty = true
		if left {
			events.Filter.Leave()
		} else {
			events.Filter.Backspace(m.session.Filter, len(m.session.Filtered))
		}
		return nil
	case tea.KeySpace:
		m.appendToFilter(' ')
		return nil
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		for _, r := range msg.Runes {
			m.appendToFilter(r)
		}
		return nil
	}
	return nil
}

func (m *Model) appendToFilter(r rune) {
	m.session.AppendFilter(r)
	m.filterCursorDirty = true
	m.errMsg = ""
	events.Filter.Append(m.session.Filter, len(m.session.Filtered))
}
