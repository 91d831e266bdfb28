// Package cmd provides helpers for executing external commands with
// working-directory override, context cancellation and proper error handling.
package cmd
