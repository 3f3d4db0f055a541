package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/tim-projects/aegis-tui/internal/state"
	textutil "github.com/tim-projects/aegis-tui/internal/textutil"
)

const (
	minScreenWidth  = 20
	minScreenHeight = 6

	maskedCode = "******"

	listTopRows = 3 // title, search prompt, column header

	// copiedFlashDuration is how long the clipboard notice stays in
	// the status line.
	copiedFlashDuration = 4 * time.Second
)

// Renderer handles all UI rendering. It is the only code that touches
// the tcell screen.
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	runeWidthCache [128]int // ASCII cache (0-127)

	// Reveal box geometry from the last full render, so the partial
	// path can repaint just the code and countdown lines.
	revealCodeY  int
	revealTimerY int
	revealBoxX   int
	revealBoxW   int
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, theme ColorTheme) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  theme,
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w < minScreenWidth || h < minScreenHeight {
		r.drawTooSmallNotice(w, h)
		r.screen.Show()
		return
	}

	switch state.Mode {
	case statepkg.ModeGroupSelect:
		r.drawTitle(state, w)
		r.drawGroupPrompt(state, w)
		r.drawGroupList(state, w, h)
	case statepkg.ModeReveal:
		r.drawTitle(state, w)
		r.drawReveal(state, w, h)
	default:
		r.drawTitle(state, w)
		r.drawSearchPrompt(state, w)
		r.drawEntryList(state, w, h)
	}
	r.drawStatusLine(state, w, h)
	r.drawKeyHelp(state, w, h)

	r.screen.Show()
}

// UpdateReveal repaints only the code and countdown lines of the reveal
// box. Everything else on screen is untouched.
func (r *Renderer) UpdateReveal(state *statepkg.AppState) {
	if state.Mode != statepkg.ModeReveal || state.Reveal == nil {
		return
	}
	w, h := r.screen.Size()
	if w < minScreenWidth || h < minScreenHeight {
		return
	}

	r.drawRevealCode(state.Reveal)
	r.drawRevealTimer(state.Reveal)
	r.screen.Show()
}

func (r *Renderer) drawTooSmallNotice(w, h int) {
	style := r.theme.base()
	msg := r.truncateTextToWidth("Terminal too small", w)
	y := h / 2
	if y < 0 {
		y = 0
	}
	r.drawTextLine(0, y, w, msg, style)
}

func (r *Renderer) drawTitle(state *statepkg.AppState, w int) {
	style := r.theme.base().Foreground(r.theme.TitleFg).Bold(true)

	title := "aegis-tui"
	if state.GroupFilter != "" {
		title += "  [" + textutil.SanitizeTerminalText(state.GroupFilter) + "]"
	}
	end := r.drawTextLine(0, 0, w, r.truncateTextToWidth(title, w), style)
	r.fillLine(end, 0, w, r.theme.base())
}

func (r *Renderer) drawSearchPrompt(state *statepkg.AppState, w int) {
	style := r.theme.base().Foreground(r.theme.PromptFg)
	prompt := "> " + state.SearchTerm
	end := r.drawTextLine(0, 1, w, r.truncateTextToWidth(prompt, w), style)
	r.fillLine(end, 1, w, r.theme.base())
}

func (r *Renderer) drawGroupPrompt(state *statepkg.AppState, w int) {
	style := r.theme.base().Foreground(r.theme.PromptFg)
	prompt := "group> " + state.GroupSearchTerm
	end := r.drawTextLine(0, 1, w, r.truncateTextToWidth(prompt, w), style)
	r.fillLine(end, 1, w, r.theme.base())
}

func (r *Renderer) drawEntryList(state *statepkg.AppState, w, h int) {
	cols := computeListColumns(w)
	headerStyle := r.theme.base().Foreground(r.theme.HeaderFg).Bold(true)

	r.drawPaddedCell(cols.numX, 2, cols.numW, "#", headerStyle)
	r.drawPaddedCell(cols.issuerX, 2, cols.issuerW, "Issuer", headerStyle)
	r.drawPaddedCell(cols.nameX, 2, cols.nameW, "Name", headerStyle)
	r.drawPaddedCell(cols.groupX, 2, cols.groupW, "Group", headerStyle)
	r.drawPaddedCell(cols.noteX, 2, cols.noteW, "Note", headerStyle)
	r.drawPaddedCell(cols.codeX, 2, cols.codeW, "Code", headerStyle)

	rows := state.VisibleRows()
	listHeight := state.ListHeight()

	if len(rows) == 0 {
		r.drawTextLine(cols.issuerX, listTopRows, w, "no matching entries", r.theme.base().Foreground(r.theme.MutedFg))
	}

	for line := 0; line < listHeight; line++ {
		idx := state.ScrollOffset + line
		if idx >= len(rows) {
			break
		}
		row := rows[idx]
		y := listTopRows + line

		style := r.theme.base()
		codeStyle := r.theme.base().Foreground(r.theme.MutedFg)
		if idx == state.SelectedRow {
			style = r.theme.selection()
			codeStyle = style
		}

		r.drawPaddedCell(cols.numX, y, cols.numW, fmt.Sprintf("%d", idx+1), style)
		r.drawPaddedCell(cols.issuerX, y, cols.issuerW, textutil.SanitizeTerminalText(row.Issuer), style)
		r.drawPaddedCell(cols.nameX, y, cols.nameW, textutil.SanitizeTerminalText(row.Name), style)
		r.drawPaddedCell(cols.groupX, y, cols.groupW, textutil.SanitizeTerminalText(strings.Join(row.GroupNames, ",")), style)
		r.drawPaddedCell(cols.noteX, y, cols.noteW, textutil.SanitizeTerminalText(row.Note), style)
		r.drawPaddedCell(cols.codeX, y, cols.codeW, maskedCode, codeStyle)
	}
}

func (r *Renderer) drawGroupList(state *statepkg.AppState, w, h int) {
	headerStyle := r.theme.base().Bold(true)
	r.drawTextLine(0, 2, w, "Select group", headerStyle)

	groups := state.VisibleGroups()
	listHeight := state.ListHeight()
	y := listTopRows

	// GroupScroll counts lines of the combined list: line 0 is the All
	// row, line i+1 is group i. The All row scrolls off with the rest.
	first := state.GroupScroll
	if first == 0 {
		style := r.theme.base()
		if state.GroupSelected == -1 {
			style = r.theme.selection()
		}
		r.drawPaddedCell(0, y, w, "All OTPs", style)
		y++
		first++
	}

	for i := first - 1; i < len(groups); i++ {
		if y >= listTopRows+listHeight {
			break
		}
		style := r.theme.base()
		if i == state.GroupSelected {
			style = r.theme.selection()
		}
		r.drawPaddedCell(0, y, w, textutil.SanitizeTerminalText(groups[i]), style)
		y++
	}
}

func (r *Renderer) drawReveal(state *statepkg.AppState, w, h int) {
	session := state.Reveal
	if session == nil {
		return
	}

	boxW := w * 2 / 3
	if boxW < minScreenWidth {
		boxW = w
	}
	r.revealBoxX = (w - boxW) / 2
	r.revealBoxW = boxW

	top := h/2 - 3
	if top < 2 {
		top = 2
	}

	label := textutil.SanitizeTerminalText(strings.TrimSpace(session.Row.Issuer + " " + session.Row.Name))
	r.drawCentered(top, label, r.theme.base().Bold(true))

	r.revealCodeY = top + 2
	r.revealTimerY = top + 4
	r.drawRevealCode(session)
	r.drawRevealTimer(session)
}

func (r *Renderer) drawRevealCode(session *statepkg.RevealSession) {
	code := session.Code
	style := r.theme.base().Foreground(r.theme.CodeFg).Bold(true)
	if session.Err != nil {
		code = "ERROR"
		style = r.theme.alert()
	}
	r.fillLine(r.revealBoxX, r.revealCodeY, r.revealBoxX+r.revealBoxW, r.theme.base())
	r.drawCentered(r.revealCodeY, spacedCode(code), style)
}

func (r *Renderer) drawRevealTimer(session *statepkg.RevealSession) {
	if session.Err != nil {
		return
	}
	seconds := session.SecondsLeft()
	style := r.theme.base().Foreground(r.theme.MutedFg)
	if seconds < 10 {
		style = r.theme.alert()
	}
	r.fillLine(r.revealBoxX, r.revealTimerY, r.revealBoxX+r.revealBoxW, r.theme.base())
	r.drawCentered(r.revealTimerY, fmt.Sprintf("expires in %ds", seconds), style)
}

// spacedCode widens a code for readability: "123456" -> "123 456".
func spacedCode(code string) string {
	if len(code) != 6 {
		return code
	}
	return code[:3] + " " + code[3:]
}

func (r *Renderer) drawCentered(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	text = r.truncateTextToWidth(text, w)
	x := (w - r.measureTextWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawTextLine(x, y, w, text, style)
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	style := r.theme.base().Foreground(r.theme.MutedFg)

	rule := strings.Repeat("─", w)
	r.drawTextLine(0, h-3, w, rule, style)

	var status string
	switch state.Mode {
	case statepkg.ModeGroupSelect:
		status = fmt.Sprintf("%d groups", len(state.VisibleGroups()))
	case statepkg.ModeReveal:
		status = "press any key to return"
	default:
		status = fmt.Sprintf("%d/%d entries", state.VisibleCount(), len(state.Rows))
		if !state.LastCopyTime.IsZero() && time.Since(state.LastCopyTime) < copiedFlashDuration {
			status += "  copied to clipboard"
		}
	}
	end := r.drawTextLine(0, h-2, w, r.truncateTextToWidth(status, w), style)
	r.fillLine(end, h-2, w, r.theme.base())
}

func (r *Renderer) drawKeyHelp(state *statepkg.AppState, w, h int) {
	style := r.theme.base().Foreground(r.theme.MutedFg)

	var help string
	switch state.Mode {
	case statepkg.ModeGroupSelect:
		help = "↑/↓ move  enter select  esc back  ^C quit"
	case statepkg.ModeReveal:
		help = "esc back  ^C quit"
	default:
		help = "type to search  ↑/↓ move  enter reveal  ^G groups  esc clear  ^C quit"
	}
	end := r.drawTextLine(0, h-1, w, r.truncateTextToWidth(help, w), style)
	r.fillLine(end, h-1, w, r.theme.base())
}
