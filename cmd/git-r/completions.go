package main

import (
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tim-timman/git-tools/internal/discover"
)

// completeRepoPattern offers discovered repository paths as candidates for
// the -I/-X pattern flags, fuzzy-ranked against what was typed so far.
func completeRepoPattern(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root, err := resolveRoot(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	loc := &discover.Locator{Root: root, MaxDepth: resolveDepth(cmd)}
	repos, _, err := loc.Find()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Rel
	}
	if toComplete == "" {
		return names, cobra.ShellCompDirectiveNoFileComp
	}

	matches := fuzzy.Find(toComplete, names)
	ranked := make([]string, len(matches))
	for i, m := range matches {
		ranked[i] = m.Str
	}
	return ranked, cobra.ShellCompDirectiveNoFileComp
}

func registerFlagCompletions(cmd *cobra.Command) {
	cmd.RegisterFlagCompletionFunc("include-repo", completeRepoPattern)
	cmd.RegisterFlagCompletionFunc("exclude-repo", completeRepoPattern)
	cmd.RegisterFlagCompletionFunc("prefix", cobra.FixedCompletions(
		[]string{"repo", "line", "no"}, cobra.ShellCompDirectiveNoFileComp))
	cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))
}
