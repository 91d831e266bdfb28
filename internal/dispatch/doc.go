// Package dispatch runs one git argument vector across many repositories.
//
// Each repository is an independent invocation with its working directory set
// to the repository path. Failures are isolated: a repository whose
// subprocess cannot start, or exits non-zero, never aborts the round.
// Results are delivered strictly in repository order and one repository's
// output block is never interleaved with another's, even under parallel
// execution.
package dispatch
