package state

import "testing"

// ===== SEARCH TESTS =====

func typeTerm(t *testing.T, r *StateReducer, s *AppState, term string) {
	t.Helper()
	for _, c := range term {
		if _, err := r.Reduce(s, SearchCharAction{Char: c}); err != nil {
			t.Fatalf("typing %q: %v", term, err)
		}
	}
}

func TestSearchNarrowsBySubstring(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "git")

	rows := s.VisibleRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for %q, got %d", "git", len(rows))
	}
	if rows[0].Issuer != "GitHub" || rows[1].Issuer != "GitLab" {
		t.Errorf("unexpected rows: %v %v", rows[0].Issuer, rows[1].Issuer)
	}
	if s.SelectedRow != 0 {
		t.Errorf("selection must reset to the top of the view, got %d", s.SelectedRow)
	}
}

func TestSearchMatchesIssuerNameAndGroup(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "shopping")
	if got := s.VisibleCount(); got != 1 {
		t.Fatalf("group term: expected 1 row, got %d", got)
	}

	if _, err := r.Reduce(s, ClearAction{}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	typeTerm(t, r, s, "bob")
	if got := s.VisibleCount(); got != 1 {
		t.Fatalf("name term: expected 1 row, got %d", got)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "GITH")
	if got := s.VisibleCount(); got != 1 {
		t.Fatalf("expected 1 row, got %d", got)
	}
}

func TestSearchNoMatchEmptiesView(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "zzz")
	if got := s.VisibleCount(); got != 0 {
		t.Fatalf("expected empty view, got %d rows", got)
	}
	if s.SelectedRow != -1 {
		t.Errorf("empty view must have no selection, got %d", s.SelectedRow)
	}
}

func TestSearchUniqueHitSelectsImplicitly(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "amazon")
	if s.VisibleCount() != 1 {
		t.Fatalf("expected unique hit")
	}
	if s.SelectedRow != 0 {
		t.Errorf("unique hit should be selected, got %d", s.SelectedRow)
	}
	if s.CursorMoved {
		t.Error("implicit selection must not count as a cursor move")
	}
}

func TestBackspaceWidensView(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "github")
	if s.VisibleCount() != 1 {
		t.Fatalf("expected 1 row")
	}

	for range "hub" {
		if _, err := r.Reduce(s, SearchBackspaceAction{}); err != nil {
			t.Fatalf("backspace: %v", err)
		}
	}
	if s.SearchTerm != "git" {
		t.Fatalf("term after backspaces: %q", s.SearchTerm)
	}
	if s.VisibleCount() != 2 {
		t.Fatalf("expected view to widen to 2 rows, got %d", s.VisibleCount())
	}
}

func TestBackspaceOnEmptyTermIsNoop(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	redraw, err := r.Reduce(s, SearchBackspaceAction{})
	if err != nil {
		t.Fatalf("backspace: %v", err)
	}
	if redraw != RedrawNone {
		t.Errorf("expected no redraw, got %v", redraw)
	}
}

func TestNumericTermSelectsByRowNumber(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	typeTerm(t, r, s, "3")

	// Digits select, they do not filter.
	if got := s.VisibleCount(); got != 4 {
		t.Fatalf("numeric term must keep all rows, got %d", got)
	}
	if s.SelectedRow != 2 {
		t.Errorf("expected row 3 selected (index 2), got %d", s.SelectedRow)
	}
	if !s.CursorMoved {
		t.Error("numeric selection counts as a cursor move")
	}
}

func TestNumericTermOutOfRangeFiltersAsText(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	// No entry contains "9", so the out-of-range number matches nothing.
	typeTerm(t, r, s, "9")
	if got := s.VisibleCount(); got != 0 {
		t.Fatalf("expected empty view, got %d rows", got)
	}
	if s.SelectedRow != -1 {
		t.Errorf("out of range number must not select, got %d", s.SelectedRow)
	}
	if s.CursorMoved {
		t.Error("out of range number must not count as a cursor move")
	}
}

func TestEscClearsSearchAndGroupFilter(t *testing.T) {
	s := testState()
	s.GroupFilter = "Work"
	s.invalidateVisibleRows()
	r := testReducer(nil)

	typeTerm(t, r, s, "git")
	redraw, err := r.Reduce(s, ClearAction{})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if redraw != RedrawFull {
		t.Errorf("expected full redraw, got %v", redraw)
	}
	if s.SearchTerm != "" || s.GroupFilter != "" {
		t.Errorf("filters not cleared: term=%q group=%q", s.SearchTerm, s.GroupFilter)
	}
	if s.VisibleCount() != 4 {
		t.Errorf("expected all rows back, got %d", s.VisibleCount())
	}
}

func TestEscWithNothingToClearIsNoop(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	redraw, err := r.Reduce(s, ClearAction{})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if redraw != RedrawNone {
		t.Errorf("expected no redraw, got %v", redraw)
	}
}

func TestSearchResetsCursorMove(t *testing.T) {
	s := testState()
	r := testReducer(nil)

	if _, err := r.Reduce(s, NavigateDownAction{}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !s.CursorMoved {
		t.Fatal("expected cursor move")
	}

	typeTerm(t, r, s, "a")
	if s.CursorMoved {
		t.Error("typing a text term must reset the cursor move flag")
	}
}
