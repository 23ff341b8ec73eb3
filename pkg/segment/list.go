package segment

import (
	"cmp"
	"slices"
)

// List is a collection of segments kept in ascending start time order.
// Segments with equal start times keep the order they were inserted in.
// The zero value is an empty list.
type List struct {
	segments []Segment
}

// NewList creates a [List] holding a sorted copy of segs.
func NewList(segs ...Segment) *List {
	l := &List{}
	l.Replace(segs)

	return l
}

// Insert adds seg and re-sorts the collection.
func (l *List) Insert(seg Segment) {
	l.segments = append(l.segments, seg)
	l.sort()
}

// Replace discards the current segments and loads a sorted copy of segs.
func (l *List) Replace(segs []Segment) {
	l.segments = slices.Clone(segs)
	l.sort()
}

// Remove deletes the segment at index i. Out of range indexes are ignored.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.segments) {
		return false
	}

	l.segments = slices.Delete(l.segments, i, i+1)

	return true
}

// Segments returns a copy of the segments.
func (l *List) Segments() []Segment {
	return slices.Clone(l.segments)
}

// At returns the segment at index i.
func (l *List) At(i int) (Segment, bool) {
	if i < 0 || i >= len(l.segments) {
		return Segment{}, false
	}

	return l.segments[i], true
}

// Len returns the number of segments.
func (l *List) Len() int {
	return len(l.segments)
}

// Clear removes all segments.
func (l *List) Clear() {
	l.segments = nil
}

func (l *List) sort() {
	slices.SortStableFunc(l.segments, func(a, b Segment) int {
		return cmp.Compare(a.StartTime, b.StartTime)
	})
}
