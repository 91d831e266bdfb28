package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tim-timman/git-tools/internal/config"
	"github.com/tim-timman/git-tools/internal/discover"
	"github.com/tim-timman/git-tools/internal/format"
	"github.com/tim-timman/git-tools/internal/git"
	"github.com/tim-timman/git-tools/internal/log"
	"github.com/tim-timman/git-tools/internal/output"
)

var (
	// Global flags, bound to the root command's persistent flags.
	verbose bool
	quiet   bool

	startDir    string
	maxDepth    int
	includeRepo []string
	excludeRepo []string
	listRepos   bool
	prefixMode  string
	jobs        int
	colorMode   string

	// Shared state injected into commands
	cfg *config.Config

	// Output streams; swapped out by tests.
	stdoutW io.Writer = os.Stdout
	stderrW io.Writer = os.Stderr
)

// newRootCmd builds the command tree. The root command itself, called with
// arguments after "--", runs that git command line verbatim in every
// discovered repository.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "git-r [flags] -- <git args...>",
		Short: "Run a git command in every repository below a directory",
		Long: `git-r discovers git repositories below the current directory (bounded by
--depth) and runs a git command in each one, aggregating the output.

Everything after "--" is handed to git verbatim; the first argument is git's
own subcommand. Use the grep subcommand for multi-repo text search with
convenience flags.

Repository include/exclude patterns (-I/-X) are regular expressions matched
against the repository path relative to the starting directory.`,
		Example: `  git-r -- fetch                     # git fetch in every repo
  git-r -d 2 -- status -sb           # shallower discovery
  git-r -X 'archive' -- pull --ff-only
  git-r --list-repos                 # print repo paths and exit
  git-r --prefix=repo -- log -1 --oneline`,
		Args:                       cobra.ArbitraryArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now; wire logger and printer into the context.
			ctx := log.WithLogger(cmd.Context(), log.New(stderrW, verbose, quiet))
			ctx = output.WithPrinter(ctx, stdoutW)
			cmd.SetContext(ctx)

			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Strip leading "--" if present
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}

			if len(args) == 0 {
				if listRepos {
					return runDispatch(cmd, nil, format.PolicyNo, false)
				}
				return fmt.Errorf("no git command given (use: git-r [flags] -- <git args...>)")
			}

			colorOn := format.DecideColor(resolveColor(cmd), terminalStdout(), args)
			return runDispatch(cmd, git.BuildPassThrough(args), format.PolicyNo, colorOn)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&startDir, "cwd", "C", "", "starting `directory` (default: current directory)")
	pf.IntVarP(&maxDepth, "depth", "d", discover.DefaultMaxDepth, "max recurse depth")
	pf.StringArrayVarP(&includeRepo, "include-repo", "I", nil, "regex `pattern` of repos to include; repeatable")
	pf.StringArrayVarP(&excludeRepo, "exclude-repo", "X", nil, "regex `pattern` of repos to exclude; repeatable")
	pf.BoolVar(&listRepos, "list-repos", false, "just list repos and exit (for piping)")
	pf.StringVar(&prefixMode, "prefix", "", "prefix git output with the repo path: repo, line or no (default depends on command)")
	pf.IntVarP(&jobs, "jobs", "j", 1, "run up to `n` repositories in parallel")
	pf.StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")

	pf.BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Suppress all diagnostics")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newGrepCmd())

	registerFlagCompletions(rootCmd)

	return rootCmd
}

// terminalStdout reports whether real stdout is a color-capable terminal.
// Always false when output has been redirected in tests.
func terminalStdout() bool {
	if stdoutW != io.Writer(os.Stdout) {
		return false
	}
	return format.Terminal(os.Stdout)
}

// Execute builds the root command and runs it, translating errors and
// interrupts into exit codes.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = &loadedCfg

	// Create context with signal handling; cancellation terminates
	// in-flight git subprocesses.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err = rootCmd.Execute()
	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted, exiting.")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'git-r -h' for help")
		os.Exit(1)
	}
}
