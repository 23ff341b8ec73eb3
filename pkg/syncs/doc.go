// Package syncs provides small synchronization helpers.
//
// [KeyLock] serializes work that targets the same key (for example, two
// folder selections for the same folder kind) while letting work on other
// keys proceed concurrently.
package syncs
