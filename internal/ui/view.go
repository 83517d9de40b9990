package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// entryRowOffset is the frame row of the first entry: the header line plus
// one blank separator.
const entryRowOffset = 2

// headerMargin keeps the header clear of the frame's right edge.
const headerMargin = 6

// View implements tea.Model.
func (m *Model) View() string {
	rows := make([]string, 0, m.session.VisibleRows+3)
	rows = append(rows, m.headerLine())
	rows = append(rows, "")
	rows = append(rows, m.entryLines()...)
	rows = append(rows, m.footerLine())
	return strings.Join(rows, "\n")
}

// headerLine renders the title, replaced by the fuzzy prompt while the
// filter is active. Both are truncated clear of the right edge.
func (m *Model) headerLine() string {
	if m.session.Filtering {
		line := "Fuzzy matching: " + renderStyled(styles.Filter, m.session.Filter) + m.renderFilterCursor()
		return truncateHeader(line, m.width)
	}
	return renderStyled(styles.Header, truncateHeader(m.title, m.width))
}

func (m *Model) entryLines() []string {
	if m.loading {
		return []string{renderStyled(styles.Item, "(building catalog…)")}
	}
	visible := m.session.VisibleRows
	if visible < 1 {
		visible = 1
	}
	lines := make([]string, 0, visible)
	for row := 0; row < visible; row++ {
		index := m.session.RowAt(row)
		if index < 0 {
			break
		}
		lines = append(lines, m.entryLine(row, index))
	}
	if len(lines) == 0 {
		msg := "(no entries)"
		if m.session.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.session.Filter)
		}
		lines = append(lines, renderStyled(styles.Item, msg))
	}
	return lines
}

// entryLine renders one catalog row: a numeric gutter for the first nine
// rows in navigation mode, then the label. The active row is drawn in
// reverse video across the full line.
func (m *Model) entryLine(row, index int) string {
	entry := m.session.Filtered[index]
	gutter := "    "
	if !m.session.Filtering && row < 9 {
		gutter = fmt.Sprintf(" %d. ", row+1)
	}
	label := entry.Label
	if m.width > 0 {
		labelWidth := m.width - headerMargin
		if labelWidth < 1 {
			labelWidth = 1
		}
		label = truncate.StringWithTail(label, uint(labelWidth), "…")
	}
	active := index == m.session.ActiveIndex
	gutterStyle := styles.Gutter
	lineStyle := styles.Item
	if active {
		gutterStyle = styles.ActiveGutter
		lineStyle = styles.ActiveItem
		if pad := m.width - headerMargin + 2 - len([]rune(gutter)) - len([]rune(label)); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
	}
	return renderStyled(gutterStyle, gutter) + renderStyled(lineStyle, label)
}

func (m *Model) footerLine() string {
	if m.errMsg != "" {
		return renderStyled(styles.Error, truncateHeader("Error: "+m.errMsg, m.width))
	}
	help := "↑/↓ move  1-9 jump  / filter  enter launch  esc cancel"
	if m.session.Filtering {
		help = "type to filter  enter launch  esc cancel"
	}
	return renderStyled(styles.Footer, truncateHeader(help, m.width))
}

func (m *Model) renderFilterCursor() string {
	m.filterCursor.SetChar(" ")
	if m.filterCursor.Blink {
		return m.filterCursor.View()
	}
	if styles.Cursor != nil {
		return styles.Cursor.Copy().Inline(true).Blink(false).Render(" ")
	}
	return m.filterCursor.View()
}

// truncateHeader trims line so it ends before the frame's right margin,
// measuring visible columns rather than bytes.
func truncateHeader(line string, width int) string {
	if width <= 0 {
		return line
	}
	limit := width - headerMargin
	if limit < 1 {
		limit = 1
	}
	if ansi.StringWidth(line) <= limit {
		return line
	}
	return ansi.Truncate(line, limit, "…")
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
