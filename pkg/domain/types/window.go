package types

import "time"

// Window is an inclusive [start, end] timestamp range scoping an aggregate
// query. A nil bound means unbounded on that side; the zero value means
// all-time.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// AllTime is the unbounded window
var AllTime = Window{}

// Since returns a window from t (inclusive) with no upper bound
func Since(t time.Time) Window {
	return Window{Start: &t}
}

// Between returns a window covering [start, end] inclusive
func Between(start, end time.Time) Window {
	return Window{Start: &start, End: &end}
}

// Contains reports whether t falls within the window. Bounds are inclusive.
func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// IsAllTime reports whether the window has no bounds
func (w Window) IsAllTime() bool {
	return w.Start == nil && w.End == nil
}
