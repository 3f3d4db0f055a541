package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		width := r.runeWidthCache[ru]
		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCache[ru] = actualWidth + 1
			return actualWidth
		}
		return width - 1
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if runeWidth < 0 {
			runeWidth = 0
		}
		width += runeWidth
	}
	return width
}

func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}

	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	ellipsisWidth := r.cachedRuneWidth([]rune(ellipsis)[0])
	if ellipsisWidth <= 0 {
		ellipsisWidth = 1
	}
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var builder strings.Builder
	currentWidth := 0

	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if runeWidth < 0 {
			runeWidth = 0
		}
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	builder.WriteString(ellipsis)
	return builder.String()
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		if x-startX >= maxWidth {
			break
		}

		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) < 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)

		w := r.cachedRuneWidth(mainc)
		if w < 0 {
			w = 0
		}
		x += w
	}

	return x
}

// fillLine pads the rest of the row with the style's background.
func (r *Renderer) fillLine(fromX, y, toX int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawPaddedCell truncates text to the cell width and fills the slack,
// so a styled row paints edge to edge.
func (r *Renderer) drawPaddedCell(x, y, width int, text string, style tcell.Style) int {
	if width <= 0 {
		return x
	}
	end := r.drawTextLine(x, y, width, r.truncateTextToWidth(text, width), style)
	r.fillLine(end, y, x+width, style)
	return x + width
}
