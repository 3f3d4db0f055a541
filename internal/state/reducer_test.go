package state

import (
	"time"

	"github.com/tim-projects/aegis-tui/internal/otp"
)

// fakeGenerator cycles through canned codes, one per call.
type fakeGenerator struct {
	codes  []string
	calls  int
	period int
}

func (g *fakeGenerator) Code(time.Time) (string, error) {
	code := g.codes[g.calls%len(g.codes)]
	g.calls++
	return code, nil
}

func (g *fakeGenerator) Period() int { return g.period }

func testRow(uuid, issuer, name string, groups ...string) EntryRow {
	row := EntryRow{
		UUID:       uuid,
		Type:       "totp",
		Issuer:     issuer,
		Name:       name,
		GroupNames: groups,
	}
	row.searchText = buildSearchText(&row)
	return row
}

func buildSearchText(r *EntryRow) string {
	text := r.Issuer + " " + r.Name
	for _, g := range r.GroupNames {
		text += " " + g
	}
	return lowerASCII(text + " " + r.Note)
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func testState() *AppState {
	s := NewAppState([]EntryRow{
		testRow("u1", "Amazon", "alice@example.com", "Shopping"),
		testRow("u2", "GitHub", "alice", "Work"),
		testRow("u3", "GitLab", "alice", "Work"),
		testRow("u4", "Proton", "bob@example.com"),
	}, []string{"Shopping", "Work"})
	s.ScreenWidth = 80
	s.ScreenHeight = 24
	return s
}

func testReducer(gens map[string]otp.Generator) *StateReducer {
	r := NewStateReducer(gens)
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r
}
