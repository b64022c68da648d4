package domain

// ComparisonResult is the outcome of comparing two species collections.
// It is built once per run by the comparator and never modified.
//
// Invariants:
//
//	|Common| + |OnlyA| + |OnlyB| = |Union|
//	|Union| = |A| + |B| - |Common|
type ComparisonResult struct {
	// LabelA and LabelB name the two sides in rendered output.
	LabelA string
	LabelB string

	A SpeciesSet
	B SpeciesSet

	Common SpeciesSet
	OnlyA  SpeciesSet
	OnlyB  SpeciesSet
	Union  SpeciesSet
}

// Counts holds the six cardinalities of a ComparisonResult.
type Counts struct {
	A      int `json:"a"`
	B      int `json:"b"`
	Common int `json:"common"`
	OnlyA  int `json:"only_a"`
	OnlyB  int `json:"only_b"`
	Union  int `json:"union"`
}

// Counts returns the sizes of every set in the result.
func (r ComparisonResult) Counts() Counts {
	return Counts{
		A:      r.A.Len(),
		B:      r.B.Len(),
		Common: r.Common.Len(),
		OnlyA:  r.OnlyA.Len(),
		OnlyB:  r.OnlyB.Len(),
		Union:  r.Union.Len(),
	}
}
