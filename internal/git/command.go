package git

import (
	"slices"
	"strings"
)

// DefaultGrepArgs are the convenience args applied to git grep unless
// suppressed with --no-defaults.
var DefaultGrepArgs = []string{"-n"}

// noPager keeps git from paginating captured output.
const noPager = "--no-pager"

// GrepOptions configures the argv built for the grep sub-mode.
type GrepOptions struct {
	// Defaults appends DefaultGrepArgs when true.
	Defaults bool

	// Color injects --color=always so git's own match coloring survives
	// output capture.
	Color bool

	// ExcludeGlobs are file globs translated into ":!glob" exclude
	// pathspecs, placed after a "--" separator as git requires.
	ExcludeGlobs []string

	// Args are the user-provided git grep arguments, forwarded verbatim.
	Args []string
}

// BuildGrep constructs the argv for one git grep dispatch round.
// Building the same options twice yields identical vectors.
func BuildGrep(opts GrepOptions) []string {
	argv := []string{noPager, "grep"}
	if opts.Color {
		argv = append(argv, "--color=always")
	}
	if opts.Defaults {
		argv = append(argv, DefaultGrepArgs...)
	}
	argv = append(argv, opts.Args...)
	if len(opts.ExcludeGlobs) > 0 {
		// Pathspecs must be clarified by "--" and put last.
		if !slices.Contains(opts.Args, "--") {
			argv = append(argv, "--")
		}
		for _, glob := range opts.ExcludeGlobs {
			argv = append(argv, ":!"+glob)
		}
	}
	return argv
}

// BuildPassThrough constructs the argv for the pass-through sub-mode.
// The user's first argument is git's own subcommand; nothing is injected
// besides --no-pager.
func BuildPassThrough(args []string) []string {
	return append([]string{noPager}, args...)
}

// Display renders an argv as the git command line a user could run,
// eliding the --no-pager plumbing flag. Used for the "=>" echo.
func Display(argv []string) string {
	var b strings.Builder
	b.WriteString("git")
	for _, arg := range argv {
		if arg == noPager {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(quote(arg))
	}
	return b.String()
}

// quote shell-quotes an argument for display purposes only.
func quote(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'`$&|;<>()*?[]!#~{}\\") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}
