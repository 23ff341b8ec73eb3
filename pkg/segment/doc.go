// Package segment defines annotated speech segments and the ordered
// collection they are edited in.
//
// A [Segment]'s end time is always derived from its start time and duration.
// Form input is handled by [Times], which applies the editing protocol: the
// field the user changed last recomputes exactly one of the other two.
package segment
