package format

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Policy selects how repository output is prefixed.
type Policy string

const (
	// PolicyRepo emits one header line with the repository path, then the
	// unmodified output block.
	PolicyRepo Policy = "repo"

	// PolicyLine prepends the repository path to every output line.
	PolicyLine Policy = "line"

	// PolicyNo passes output through unchanged.
	PolicyNo Policy = "no"
)

// ParsePolicy validates a --prefix flag or config value.
// An empty string is valid and means "use the sub-mode's default".
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRepo, PolicyLine, PolicyNo, "":
		return Policy(s), nil
	}
	return "", fmt.Errorf("invalid prefix policy %q (want repo, line or no)", s)
}

// repoStyle colors the repository prefix, matching git's default green for
// paths in grep output.
var repoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

// Renderer renders one repository's captured output per the prefix policy.
type Renderer struct {
	Policy Policy
	Color  bool
}

// Render writes one repository block. rel is the repository path relative to
// the traversal root. Subprocess stdout goes to wOut, subprocess stderr to
// wErr; stderr lines are prefixed the same way so attribution survives
// stream redirection. Empty output emits nothing at all.
func (r *Renderer) Render(wOut, wErr io.Writer, rel string, stdout, stderr []byte) {
	if len(stdout) == 0 && len(stderr) == 0 {
		return
	}

	prefix := r.prefix(rel)
	switch r.Policy {
	case PolicyRepo:
		fmt.Fprintln(wOut, prefix)
		wOut.Write(stdout)
		wErr.Write(stderr)
	case PolicyLine:
		writePrefixed(wOut, prefix, stdout)
		writePrefixed(wErr, prefix, stderr)
	default:
		wOut.Write(stdout)
		wErr.Write(stderr)
	}
}

// prefix renders the repository path with a trailing slash; the slash stays
// uncolored so the prefix reads like a path component.
func (r *Renderer) prefix(rel string) string {
	if r.Color {
		return repoStyle.Render(rel) + "/"
	}
	return rel + "/"
}

// writePrefixed prepends prefix to every line of b, preserving line endings
// (a final line without a newline stays without one).
func writePrefixed(w io.Writer, prefix string, b []byte) {
	for len(b) > 0 {
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line, b = b[:i+1], b[i+1:]
		} else {
			b = nil
		}
		io.WriteString(w, prefix)
		w.Write(line)
	}
}

// DecideColor decides whether to colorize, combining the --color mode, the
// destination terminal, and any color args the user passed through for git
// itself. A user-supplied --color=never wins over everything.
func DecideColor(mode string, terminal bool, gitArgs []string) bool {
	if slices.Contains(gitArgs, "--color=never") {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		return terminal
	}
}
