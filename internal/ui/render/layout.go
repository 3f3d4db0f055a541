package render

// codeColWidth fits an 8-digit code plus a leading gap.
const codeColWidth = 9

// numColWidth fits a 3-digit row number and a gap.
const numColWidth = 4

// listColumns places the entry list columns for one terminal width.
// Issuer, name and group take fixed shares of the flexible space and
// the note soaks up the rest.
type listColumns struct {
	numX, numW       int
	issuerX, issuerW int
	nameX, nameW     int
	groupX, groupW   int
	noteX, noteW     int
	codeX, codeW     int
}

func computeListColumns(w int) listColumns {
	cols := listColumns{numX: 0, numW: numColWidth}

	flexible := w - numColWidth - codeColWidth
	if flexible < 0 {
		flexible = 0
	}

	issuerW := flexible * 25 / 100
	nameW := flexible * 30 / 100
	groupW := flexible * 20 / 100
	noteW := flexible - issuerW - nameW - groupW

	cols.issuerX = numColWidth
	cols.issuerW = issuerW
	cols.nameX = cols.issuerX + issuerW
	cols.nameW = nameW
	cols.groupX = cols.nameX + nameW
	cols.groupW = groupW
	cols.noteX = cols.groupX + groupW
	cols.noteW = noteW
	cols.codeX = cols.noteX + noteW
	cols.codeW = codeColWidth
	return cols
}
