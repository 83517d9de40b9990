package state

import (
	"github.com/atomicstack/mux-launcher/internal/catalog"
)

// rowOverhead is the number of frame rows that never hold entries: the
// header, its blank separator, and the trailing prompt line.
const rowOverhead = 3

// Session holds the navigation and filtering state of one launcher run.
type Session struct {
	Entries  catalog.Catalog
	Filtered catalog.Catalog

	ActiveIndex int
	TopRow      int
	VisibleRows int

	Filter       string
	Filtering    bool
	AlwaysFilter bool
}

// NewSession seeds the state from a freshly built catalog. When alwaysFilter
// is set the session starts in filtering mode and never leaves it.
func NewSession(entries catalog.Catalog, alwaysFilter bool) *Session {
	s := &Session{
		Entries:      entries,
		AlwaysFilter: alwaysFilter,
		Filtering:    alwaysFilter,
	}
	s.refilter()
	return s
}

// Resize recomputes the viewport for a new terminal height and keeps the
// active row visible.
func (s *Session) Resize(height int) {
	s.VisibleRows = height - rowOverhead
	if s.VisibleRows < 1 {
		s.VisibleRows = 1
	}
	s.clamp()
}

// MoveUp moves the cursor one row up, stopping at the first entry.
func (s *Session) MoveUp() {
	s.MoveBy(-1)
}

// MoveDown moves the cursor one row down, stopping at the last entry.
func (s *Session) MoveDown() {
	s.MoveBy(1)
}

// MoveBy moves the cursor by delta rows, clamped to the filtered list.
func (s *Session) MoveBy(delta int) {
	s.ActiveIndex += delta
	s.clamp()
}

// Select places the cursor on index when it names a filtered entry and
// reports whether it did.
func (s *Session) Select(index int) bool {
	if index < 0 || index >= len(s.Filtered) {
		return false
	}
	s.ActiveIndex = index
	s.clamp()
	return true
}

// Active returns the entry under the cursor, if any.
func (s *Session) Active() (catalog.Entry, bool) {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Filtered) {
		return catalog.Entry{}, false
	}
	return s.Filtered[s.ActiveIndex], true
}

// EnterFiltering switches to filtering mode.
func (s *Session) EnterFiltering() {
	s.Filtering = true
}

// LeaveFiltering returns to navigation mode and clears the filter. In
// always-filter sessions it only clears the filter text.
func (s *Session) LeaveFiltering() {
	if !s.AlwaysFilter {
		s.Filtering = false
	}
	if s.Filter != "" {
		s.Filter = ""
		s.refilter()
	}
}

// AppendFilter appends r to the filter and re-ranks the entries.
func (s *Session) AppendFilter(r rune) {
	s.Filter += string(r)
	s.refilter()
}

// PopFilter removes the last filter rune. Popping an already-empty filter
// leaves filtering mode unless the session always filters; the return value
// reports whether the mode changed.
func (s *Session) PopFilter() bool {
	if s.Filter == "" {
		if s.AlwaysFilter {
			return false
		}
		s.Filtering = false
		return true
	}
	runes := []rune(s.Filter)
	s.Filter = string(runes[:len(runes)-1])
	s.refilter()
	return false
}

// Scroll moves the viewport by delta rows and drags the cursor along so it
// stays on a visible row.
func (s *Session) Scroll(delta int) {
	s.TopRow += delta
	maxOffset := len(s.Filtered) - s.VisibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.TopRow > maxOffset {
		s.TopRow = maxOffset
	}
	if s.TopRow < 0 {
		s.TopRow = 0
	}
	if s.ActiveIndex < s.TopRow {
		s.ActiveIndex = s.TopRow
	}
	if s.ActiveIndex >= s.TopRow+s.VisibleRows {
		s.ActiveIndex = s.TopRow + s.VisibleRows - 1
	}
	if s.ActiveIndex >= len(s.Filtered) {
		s.ActiveIndex = len(s.Filtered) - 1
	}
	if s.ActiveIndex < 0 {
		s.ActiveIndex = 0
	}
}

// RowAt translates a viewport row into a filtered-entry index, or -1 when
// the row is past the end of the list.
func (s *Session) RowAt(row int) int {
	index := s.TopRow + row
	if row < 0 || index >= len(s.Filtered) {
		return -1
	}
	return index
}

// refilter recomputes the filtered view and resets the cursor to the top,
// matching the behavior of typing in any launcher row.
func (s *Session) refilter() {
	s.Filtered = FilterEntries(s.Entries, s.Filter)
	s.ActiveIndex = 0
	s.TopRow = 0
}

// clamp keeps the cursor inside the filtered list and scrolls the viewport
// so the cursor is visible.
func (s *Session) clamp() {
	if s.ActiveIndex >= len(s.Filtered) {
		s.ActiveIndex = len(s.Filtered) - 1
	}
	if s.ActiveIndex < 0 {
		s.ActiveIndex = 0
	}
	if s.VisibleRows < 1 {
		return
	}
	if s.ActiveIndex < s.TopRow {
		s.TopRow = s.ActiveIndex
	}
	if s.ActiveIndex >= s.TopRow+s.VisibleRows {
		s.TopRow = s.ActiveIndex - s.VisibleRows + 1
	}
	if s.TopRow < 0 {
		s.TopRow = 0
	}
}
