package model

import (
	"sort"
)

// Department is a named hospital unit with an associated phone number.
// Phone may be empty; renderers show a placeholder dash for it.
type Department struct {
	Name  string
	Phone string
}

// Directory is an immutable snapshot of the loaded department list. A reload
// builds a new Directory and swaps the reference; existing readers keep the
// snapshot they started with.
//
// The normalized-key index keeps every entry whose name collides on the same
// key, so a colliding department is never silently shadowed by a later row.
type Directory struct {
	departments []Department
	index       map[string][]int
	normalize   func(string) string
}

// NewDirectory builds a snapshot from entries, ordered by display name.
// normalize is the canonicalization applied to build the lookup index.
func NewDirectory(entries []Department, normalize func(string) string) *Directory {
	departments := make([]Department, len(entries))
	copy(departments, entries)
	sort.SliceStable(departments, func(i, j int) bool {
		return departments[i].Name < departments[j].Name
	})

	index := make(map[string][]int, len(departments))
	for i, d := range departments {
		key := normalize(d.Name)
		index[key] = append(index[key], i)
	}

	return &Directory{
		departments: departments,
		index:       index,
		normalize:   normalize,
	}
}

// Len returns the number of departments in the snapshot
func (x *Directory) Len() int {
	return len(x.departments)
}

// At returns the department at index i
func (x *Directory) At(i int) (Department, bool) {
	if i < 0 || i >= len(x.departments) {
		return Department{}, false
	}
	return x.departments[i], true
}

// Names returns the ordered department display names
func (x *Directory) Names() []string {
	names := make([]string, len(x.departments))
	for i, d := range x.departments {
		names[i] = d.Name
	}
	return names
}

// Lookup returns every department whose name normalizes to the same key as
// the given text. More than one result means a normalized-key collision;
// callers must disambiguate via a menu instead of picking one.
func (x *Directory) Lookup(text string) []Department {
	indices := x.index[x.normalize(text)]
	if len(indices) == 0 {
		return nil
	}
	out := make([]Department, 0, len(indices))
	for _, i := range indices {
		out = append(out, x.departments[i])
	}
	return out
}
