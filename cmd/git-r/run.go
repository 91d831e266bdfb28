package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tim-timman/git-tools/internal/discover"
	"github.com/tim-timman/git-tools/internal/dispatch"
	"github.com/tim-timman/git-tools/internal/format"
	"github.com/tim-timman/git-tools/internal/git"
	"github.com/tim-timman/git-tools/internal/log"
	"github.com/tim-timman/git-tools/internal/output"
)

// runDispatch is the shared pipeline behind both sub-modes: discover
// repositories, then either list them (--list-repos) or run argv in each and
// render the per-repository blocks in discovery order.
func runDispatch(cmd *cobra.Command, argv []string, defaultPolicy format.Policy, colorOn bool) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	p := output.FromContext(ctx)

	root, err := resolveRoot(cmd)
	if err != nil {
		return err
	}
	filter, err := resolveFilter(cmd)
	if err != nil {
		return err
	}

	loc := &discover.Locator{Root: root, MaxDepth: resolveDepth(cmd), Filter: filter}
	repos, warnings, err := loc.Find()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		l.Warnf("skipping %s: %v", w.Path, w.Err)
	}

	if listRepos {
		for _, r := range repos {
			p.Println(r.Path)
		}
		return nil
	}

	policy, err := resolvePrefix(cmd, defaultPolicy)
	if err != nil {
		return err
	}

	l.Printf("=> %s\n", git.Display(argv))

	renderer := &format.Renderer{Policy: policy, Color: colorOn}
	opts := dispatch.Options{Jobs: resolveJobs(cmd)}
	dispatch.Run(ctx, repos, argv, opts, func(res dispatch.Result) {
		if res.StartErr != nil {
			l.Errorf("in repo %s: %v", res.Repo.Rel, res.StartErr)
			return
		}
		renderer.Render(p, l.Writer(), res.Repo.Rel, res.Stdout, res.Stderr)
	})
	return nil
}

// resolveRoot returns the absolute starting directory: -C flag or the
// process working directory.
func resolveRoot(cmd *cobra.Command) (string, error) {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

// resolveFilter compiles repo include/exclude patterns.
// Flags override the config file when given.
func resolveFilter(cmd *cobra.Command) (*discover.Filter, error) {
	include, exclude := includeRepo, excludeRepo
	if cfg != nil {
		if !cmd.Flags().Changed("include-repo") {
			include = cfg.Discover.Include
		}
		if !cmd.Flags().Changed("exclude-repo") {
			exclude = cfg.Discover.Exclude
		}
	}
	return discover.NewFilter(include, exclude)
}

func resolveDepth(cmd *cobra.Command) int {
	if cfg != nil && !cmd.Flags().Changed("depth") {
		return cfg.Discover.Depth
	}
	return maxDepth
}

func resolveJobs(cmd *cobra.Command) int {
	if cfg != nil && !cmd.Flags().Changed("jobs") {
		return cfg.Dispatch.Jobs
	}
	return jobs
}

func resolveColor(cmd *cobra.Command) string {
	if cfg != nil && !cmd.Flags().Changed("color") && cfg.Output.Color != "" {
		return cfg.Output.Color
	}
	return colorMode
}

// resolvePrefix picks the output prefix policy: flag > config > the
// sub-mode's own default.
func resolvePrefix(cmd *cobra.Command, def format.Policy) (format.Policy, error) {
	if cmd.Flags().Changed("prefix") {
		policy, err := format.ParsePolicy(prefixMode)
		if err != nil || policy == "" {
			return "", fmt.Errorf("invalid --prefix %q (want repo, line or no)", prefixMode)
		}
		return policy, nil
	}
	if cfg != nil && cfg.Output.Prefix != "" {
		return format.Policy(cfg.Output.Prefix), nil
	}
	return def, nil
}
