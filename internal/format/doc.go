// Package format renders per-repository output blocks.
//
// Three prefix policies exist: "repo" emits a header line with the repository
// path before the block, "line" prepends the repository path to every output
// line (mirroring git grep's own path: prefix convention), and "no" passes
// output through unchanged. A repository that produced no output emits
// nothing under any policy.
package format
