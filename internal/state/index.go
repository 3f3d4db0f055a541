package state

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tim-projects/aegis-tui/internal/vault"
)

// EntryRow is one selectable line of the entry list. It carries the
// display fields of a vault entry plus a precomputed lowercase haystack
// for filtering.
type EntryRow struct {
	UUID       string
	Type       string
	Issuer     string
	Name       string
	Note       string
	GroupNames []string

	// OriginalIndex points back into the vault's entry slice.
	OriginalIndex int

	searchText string
}

// Matches reports whether the row contains term (already lowercased)
// in its issuer, name, groups or note.
func (r *EntryRow) Matches(term string) bool {
	return strings.Contains(r.searchText, term)
}

// BuildIndex flattens a decrypted vault into sorted entry rows and the
// list of group names. Text is NFC-normalized so search input composed
// differently by the terminal still matches.
func BuildIndex(v *vault.Vault) ([]EntryRow, []string) {
	groupNames := make(map[string]string, len(v.DB.Groups))
	for _, g := range v.DB.Groups {
		groupNames[g.UUID] = norm.NFC.String(g.Name)
	}

	rows := make([]EntryRow, 0, len(v.DB.Entries))
	for i, e := range v.DB.Entries {
		row := EntryRow{
			UUID:          e.UUID,
			Type:          e.Type,
			Issuer:        norm.NFC.String(e.Issuer),
			Name:          norm.NFC.String(e.Name),
			Note:          norm.NFC.String(e.Note),
			OriginalIndex: i,
		}
		for _, uuid := range e.Groups {
			if name, ok := groupNames[uuid]; ok {
				row.GroupNames = append(row.GroupNames, name)
			}
		}
		row.searchText = strings.ToLower(strings.Join([]string{
			row.Issuer, row.Name, strings.Join(row.GroupNames, " "), row.Note,
		}, " "))
		rows = append(rows, row)
	}

	// Sorted by account name; entries with equal names keep their
	// vault order.
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})

	groups := make([]string, 0, len(v.DB.Groups))
	for _, g := range v.DB.Groups {
		groups = append(groups, norm.NFC.String(g.Name))
	}
	sort.Slice(groups, func(i, j int) bool {
		return strings.ToLower(groups[i]) < strings.ToLower(groups[j])
	})
	return rows, groups
}

// InGroup reports whether the row belongs to the named group. An empty
// group name means no group filter.
func (r *EntryRow) InGroup(group string) bool {
	if group == "" {
		return true
	}
	for _, g := range r.GroupNames {
		if g == group {
			return true
		}
	}
	return false
}
