// Package cli implements the command-line interface for orwatch.
//
// The root command performs one check: fetch the schedule page, decide
// whether its content changed, parse it, optionally resolve one person's
// assignment, and archive the result. The watch subcommand runs the same
// check on an interval and pushes notifications when a person's resolved
// schedule changes. Exit codes: 0 no change, 1 error, 2 schedule changed.
package cli
