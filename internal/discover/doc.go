// Package discover locates git repository roots beneath a starting directory.
//
// The walk is breadth-first and depth-bounded. A directory containing a .git
// marker (directory or file) is a repository root; the walk never descends
// into a repository, so nested checkouts are not reported independently.
// Include and exclude filters use Go regular expressions matched against the
// repository path relative to the starting directory.
package discover
