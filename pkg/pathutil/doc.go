// Package pathutil provides OS-aware helpers for path strings that may use
// either Windows (`\`) or POSIX (`/`) separators.
//
// The helpers never touch the filesystem. A path is treated as a sequence of
// non-empty segments separated by one or more separator characters of either
// style; `.` and `..` are not resolved. Which separator is produced is decided
// by [Paths.IsWindows], a heuristic over a [Host] description that is
// re-evaluated on every call.
package pathutil
