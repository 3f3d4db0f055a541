package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	TitleFg     tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	PromptFg    tcell.Color
	HeaderFg    tcell.Color
	MutedFg     tcell.Color
	CodeFg      tcell.Color
	AlertFg     tcell.Color
	noColor     bool
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		TitleFg:     tcell.Color33,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		PromptFg:    tcell.Color44,
		HeaderFg:    tcell.ColorDefault,
		MutedFg:     tcell.ColorLightSlateGray,
		CodeFg:      tcell.Color44,
		AlertFg:     tcell.ColorRed,
	}
}

// GetMonoTheme returns a colorless scheme for --no-color terminals.
// Selection falls back to reverse video.
func GetMonoTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		TitleFg:     tcell.ColorDefault,
		SelectionBg: tcell.ColorDefault,
		SelectionFg: tcell.ColorDefault,
		PromptFg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		MutedFg:     tcell.ColorDefault,
		CodeFg:      tcell.ColorDefault,
		AlertFg:     tcell.ColorDefault,
		noColor:     true,
	}
}

func (t ColorTheme) base() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

func (t ColorTheme) selection() tcell.Style {
	if t.noColor {
		return t.base().Reverse(true)
	}
	return tcell.StyleDefault.Background(t.SelectionBg).Foreground(t.SelectionFg)
}

func (t ColorTheme) alert() tcell.Style {
	if t.noColor {
		return t.base().Bold(true)
	}
	return t.base().Foreground(t.AlertFg)
}
