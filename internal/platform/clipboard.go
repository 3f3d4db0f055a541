// Package platform covers the OS-specific edges: getting a code onto
// the system clipboard from whatever environment the terminal runs in.
package platform

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard copies text to the system clipboard.
type Clipboard struct {
	command []string
}

// NewClipboard builds a Clipboard. When tool is non-empty it names an
// external copy command to pipe into (as configured by the user);
// otherwise a platform tool is auto-detected, falling back to the
// portable clipboard library.
func NewClipboard(tool string) *Clipboard {
	if tool != "" {
		return &Clipboard{command: strings.Fields(tool)}
	}
	if cmd, ok := detectCopyCommand(runtime.GOOS, exec.LookPath); ok {
		return &Clipboard{command: cmd}
	}
	return &Clipboard{}
}

// Copy places text on the clipboard. Failures are reported but callers
// treat the clipboard as best effort.
func (c *Clipboard) Copy(text string) error {
	if len(c.command) == 0 {
		return clipboard.WriteAll(text)
	}
	cmd := exec.Command(c.command[0], c.command[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func detectCopyCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	if strings.EqualFold(goos, "windows") {
		for _, candidate := range []string{"clip.exe", "clip"} {
			if path, err := lookPath(candidate); err == nil && path != "" {
				return []string{path}, true
			}
		}
		return nil, false
	}

	candidates := [][]string{
		{"pbcopy"},
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
	}
	for _, c := range candidates {
		if path, err := lookPath(c[0]); err == nil && path != "" {
			return append([]string{path}, c[1:]...), true
		}
	}
	return nil, false
}
