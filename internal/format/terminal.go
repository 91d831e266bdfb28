package format

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

// Terminal reports whether f is a color-capable terminal. Used as the
// "auto" answer for DecideColor.
func Terminal(f *os.File) bool {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	p := colorprofile.Detect(f, os.Environ())
	return p != colorprofile.NoTTY && p != colorprofile.Ascii
}
