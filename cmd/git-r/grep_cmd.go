package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tim-timman/git-tools/internal/format"
	"github.com/tim-timman/git-tools/internal/git"
)

func newGrepCmd() *cobra.Command {
	var (
		excludeGlobs []string
		noDefaults   bool
	)

	cmd := &cobra.Command{
		Use:   "grep [flags] [--] [git grep args...]",
		Short: "Search text in every repository with git grep",
		Long: `Run git grep in every discovered repository and aggregate the matches.

Flag parsing stops at the first positional argument; everything from there on
(including git grep's own flags) is forwarded to git grep verbatim. Use "--"
to be explicit when the first forwarded argument starts with a dash.

By default matching lines are prefixed with the repository path, visually
matching git grep's own file:line: prefix (override with --prefix).`,
		Example: `  git-r grep TODO                      # search every repo
  git-r grep -x '*.lock' TODO          # skip lockfiles via git pathspec
  git-r grep -- -i 'flux capacitor'    # forward flags to git grep
  git-r grep --no-defaults -- -c TODO  # count per file, no -n`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Strip leading "--" if present
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}

			if len(args) == 0 && !listRepos {
				return fmt.Errorf("no search arguments given (use: git-r grep [--] <git grep args...>)")
			}

			colorOn := format.DecideColor(resolveColor(cmd), terminalStdout(), args)
			argv := git.BuildGrep(git.GrepOptions{
				Defaults:     !noDefaults,
				Color:        colorOn,
				ExcludeGlobs: excludeGlobs,
				Args:         args,
			})
			return runDispatch(cmd, argv, format.PolicyLine, colorOn)
		},
	}

	// Everything after the first positional belongs to git grep.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringArrayVarP(&excludeGlobs, "exclude", "x", nil, "convenience for git grep's exclude files `glob` (e.g. '*.lock'); repeatable")
	cmd.Flags().BoolVar(&noDefaults, "no-defaults", false, fmt.Sprintf("don't use default git args: %s", strings.Join(git.DefaultGrepArgs, " ")))

	return cmd
}
