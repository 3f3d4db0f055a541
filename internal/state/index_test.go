package state

import (
	"testing"

	"github.com/tim-projects/aegis-tui/internal/vault"
)

func TestBuildIndexSortsAndResolvesGroups(t *testing.T) {
	v := &vault.Vault{DB: vault.DB{
		Entries: []vault.Entry{
			{UUID: "u1", Issuer: "Zeta", Name: "aaa", Groups: []string{"g1"}},
			{UUID: "u2", Issuer: "Alpha", Name: "zzz", Groups: []string{"g1", "g2"}},
			{UUID: "u3", Issuer: "", Name: "Middle"},
		},
		Groups: []vault.Group{
			{UUID: "g1", Name: "Work"},
			{UUID: "g2", Name: "Personal"},
		},
	}}

	rows, groups := BuildIndex(v)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// Case-insensitive sort by account name; the issuer plays no part.
	if rows[0].UUID != "u1" || rows[1].UUID != "u3" || rows[2].UUID != "u2" {
		t.Errorf("order: %s %s %s", rows[0].UUID, rows[1].UUID, rows[2].UUID)
	}

	if len(rows[2].GroupNames) != 2 {
		t.Fatalf("u2 groups: %v", rows[2].GroupNames)
	}
	if rows[2].GroupNames[0] != "Work" || rows[2].GroupNames[1] != "Personal" {
		t.Errorf("u2 group names: %v", rows[2].GroupNames)
	}

	if len(groups) != 2 || groups[0] != "Personal" || groups[1] != "Work" {
		t.Errorf("groups: %v", groups)
	}
}

func TestBuildIndexKeepsOriginalIndices(t *testing.T) {
	v := &vault.Vault{DB: vault.DB{
		Entries: []vault.Entry{
			{UUID: "u1", Name: "b"},
			{UUID: "u2", Name: "a"},
			{UUID: "u3", Name: "a"},
		},
	}}

	rows, _ := BuildIndex(v)
	if rows[0].UUID != "u2" || rows[0].OriginalIndex != 1 {
		t.Errorf("row 0: %+v", rows[0])
	}
	// Equal names stay in vault order.
	if rows[1].UUID != "u3" || rows[1].OriginalIndex != 2 {
		t.Errorf("row 1: %+v", rows[1])
	}
	if rows[2].UUID != "u1" || rows[2].OriginalIndex != 0 {
		t.Errorf("row 2: %+v", rows[2])
	}
}

func TestBuildIndexSearchText(t *testing.T) {
	v := &vault.Vault{DB: vault.DB{
		Entries: []vault.Entry{
			{UUID: "u1", Issuer: "GitHub", Name: "Alice", Note: "Backup Codes", Groups: []string{"g1"}},
		},
		Groups: []vault.Group{{UUID: "g1", Name: "Work"}},
	}}

	rows, _ := BuildIndex(v)
	for _, term := range []string{"github", "alice", "work", "backup codes"} {
		if !rows[0].Matches(term) {
			t.Errorf("row should match %q", term)
		}
	}
	if rows[0].Matches("personal") {
		t.Error("row should not match an absent term")
	}
}

func TestBuildIndexIgnoresUnknownGroupUUIDs(t *testing.T) {
	v := &vault.Vault{DB: vault.DB{
		Entries: []vault.Entry{
			{UUID: "u1", Issuer: "X", Groups: []string{"missing"}},
		},
	}}

	rows, _ := BuildIndex(v)
	if len(rows[0].GroupNames) != 0 {
		t.Errorf("unknown group resolved: %v", rows[0].GroupNames)
	}
}
