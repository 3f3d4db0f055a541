package state

import "time"

// Mode says which view the UI is in.
type Mode int

const (
	// ModeList shows the filtered entry list with masked codes.
	ModeList Mode = iota
	// ModeGroupSelect shows the group picker.
	ModeGroupSelect
	// ModeReveal shows one entry's live code and countdown.
	ModeReveal
)

// Redraw is the reducer's hint to the render loop.
type Redraw int

const (
	// RedrawNone means the screen still matches the state.
	RedrawNone Redraw = iota
	// RedrawPartial means only the reveal code and countdown lines moved.
	RedrawPartial
	// RedrawFull means repaint everything.
	RedrawFull
)

// listChromeLines is the number of screen lines around the entry list:
// box borders, the column header, the search prompt and the key help.
const listChromeLines = 6

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	Mode Mode

	// Entry list
	Rows   []EntryRow // all vault entries, sorted
	Groups []string   // all group names, sorted

	// Selection & viewport
	SelectedRow  int // index into the visible rows, -1 when nothing selected
	ScrollOffset int
	// CursorMoved is set once the user explicitly picks a row, by
	// arrow keys or a numeric search term. Enter reveals only an
	// explicit pick or a unique search hit.
	CursorMoved bool

	// Filtering
	SearchTerm  string
	GroupFilter string // group name, "" = all groups

	// Group select mode
	GroupSearchTerm string
	GroupSelected   int // index into visible groups, -1 = the "All" row
	GroupScroll     int

	// Reveal mode
	Reveal *RevealSession

	// Status line
	ClipboardAvailable bool
	LastCopyTime       time.Time // for the "copied" flash

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Visible rows cache (optimization to reduce allocations)
	visibleCache []int // indices into Rows
	visibleDirty bool
}

// NewAppState builds the initial list state over an indexed vault.
// The first row starts selected; -1 only ever means an empty view.
func NewAppState(rows []EntryRow, groups []string) *AppState {
	s := &AppState{
		Rows:          rows,
		Groups:        groups,
		SelectedRow:   -1,
		GroupSelected: -1,
		visibleDirty:  true,
	}
	if len(rows) > 0 {
		s.SelectedRow = 0
	}
	return s
}

// ===== VISIBLE ROWS =====

// invalidateVisibleRows marks the visible row cache as dirty.
// Call it whenever SearchTerm, GroupFilter or Rows change.
func (s *AppState) invalidateVisibleRows() {
	s.visibleDirty = true
	s.visibleCache = nil
}

func (s *AppState) visibleRowIndices() []int {
	if !s.visibleDirty && s.visibleCache != nil {
		return s.visibleCache
	}

	term := normalizedSearchTerm(s.SearchTerm)
	textFilter := term != ""
	if textFilter && s.numericSelector() > 0 {
		// An in-range row number selects instead of filtering.
		textFilter = false
	}

	indices := make([]int, 0, len(s.Rows))
	for i := range s.Rows {
		row := &s.Rows[i]
		if !row.InGroup(s.GroupFilter) {
			continue
		}
		if textFilter && !row.Matches(term) {
			continue
		}
		indices = append(indices, i)
	}

	s.visibleCache = indices
	s.visibleDirty = false
	return indices
}

// numericSelector returns the 1-based row number a purely numeric search
// term selects, or 0 when the term is not numeric or falls outside the
// group-filtered view. Out-of-range numbers filter as plain text.
func (s *AppState) numericSelector() int {
	n, ok := parseNumericTerm(s.SearchTerm)
	if !ok {
		return 0
	}
	inGroup := 0
	for i := range s.Rows {
		if s.Rows[i].InGroup(s.GroupFilter) {
			inGroup++
		}
	}
	if n < 1 || n > inGroup {
		return 0
	}
	return n
}

// VisibleRows returns the rows the current search term and group filter
// leave in view, in display order.
func (s *AppState) VisibleRows() []EntryRow {
	indices := s.visibleRowIndices()
	rows := make([]EntryRow, len(indices))
	for i, idx := range indices {
		rows[i] = s.Rows[idx]
	}
	return rows
}

// VisibleCount returns the number of rows in view without copying them.
func (s *AppState) VisibleCount() int {
	return len(s.visibleRowIndices())
}

// SelectedEntry returns the row under the cursor, or nil.
func (s *AppState) SelectedEntry() *EntryRow {
	indices := s.visibleRowIndices()
	if s.SelectedRow < 0 || s.SelectedRow >= len(indices) {
		return nil
	}
	return &s.Rows[indices[s.SelectedRow]]
}

// SetGroupFilter applies a group filter directly, bypassing the picker,
// and moves the selection back inside the filtered view.
func (s *AppState) SetGroupFilter(group string) {
	s.GroupFilter = group
	s.invalidateVisibleRows()
	s.clampSelection()
}

// ===== VIEWPORT =====

// ListHeight is the number of entry rows the terminal can show.
func (s *AppState) ListHeight() int {
	h := s.ScreenHeight - listChromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// updateScrollVisibility keeps the selected row inside the viewport and
// the offset inside [0, total-height].
func (s *AppState) updateScrollVisibility() {
	visibleLines := s.ListHeight()

	if s.SelectedRow >= 0 {
		if s.SelectedRow < s.ScrollOffset {
			s.ScrollOffset = s.SelectedRow
		} else if s.SelectedRow >= s.ScrollOffset+visibleLines {
			s.ScrollOffset = s.SelectedRow - visibleLines + 1
		}
	}

	maxOffset := s.VisibleCount() - visibleLines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
}

// clampSelection keeps SelectedRow valid after the view shrank.
func (s *AppState) clampSelection() {
	count := s.VisibleCount()
	if count == 0 {
		s.SelectedRow = -1
		s.ScrollOffset = 0
		return
	}
	if s.SelectedRow < 0 {
		s.SelectedRow = 0
	}
	if s.SelectedRow >= count {
		s.SelectedRow = count - 1
	}
	s.updateScrollVisibility()
}
