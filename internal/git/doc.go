// Package git builds the argument vectors handed to the git binary.
//
// git itself is opaque to this tool: argument vectors are constructed once
// per run and reused byte-identically for every repository; git's output and
// exit codes are passed through. The only git knowledge encoded here is the
// grep subcommand's flag conventions (default -n, --color, and ":!" exclude
// pathspecs after a "--" separator).
package git
