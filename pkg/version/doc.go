// Package version records build information, set with -ldflags at release
// time.
package version
