package domain

import "sort"

// SpeciesName identifies one plant taxon. Two names are the same species
// only if the strings are byte-for-byte equal.
type SpeciesName string

// SpeciesSet is an immutable set of species names.
// The zero value is an empty set.
type SpeciesSet struct {
	m map[SpeciesName]struct{}
}

// NewSpeciesSet builds a set from names. Duplicates collapse.
func NewSpeciesSet(names ...SpeciesName) SpeciesSet {
	m := make(map[SpeciesName]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return SpeciesSet{m: m}
}

// Len returns the number of distinct names.
func (s SpeciesSet) Len() int {
	return len(s.m)
}

// Contains reports whether name is in the set.
func (s SpeciesSet) Contains(name SpeciesName) bool {
	_, ok := s.m[name]
	return ok
}

// Sorted returns the members in ascending lexicographic order.
// The returned slice is a fresh copy.
func (s SpeciesSet) Sorted() []SpeciesName {
	out := make([]SpeciesName, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings is Sorted converted to plain strings.
func (s SpeciesSet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, n := range sorted {
		out[i] = string(n)
	}
	return out
}

// Each calls fn for every member in unspecified order.
func (s SpeciesSet) Each(fn func(SpeciesName)) {
	for n := range s.m {
		fn(n)
	}
}

// Dataset is one labeled input collection as read from disk.
type Dataset struct {
	// Label names the dataset in every report (e.g. "PlantCLEF2015").
	Label string

	// Path is the file the names were read from.
	Path string

	// Names holds the mapping values in file order, duplicates included.
	Names []SpeciesName
}

// Set returns the distinct names of the dataset.
func (d Dataset) Set() SpeciesSet {
	return NewSpeciesSet(d.Names...)
}
