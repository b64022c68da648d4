// Package compare derives the set statistics shared by every report.
package compare

import (
	"fmt"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// Compare converts two name sequences into sets and derives their
// intersection, both differences and union.
// Duplicates in either input have no effect on the result.
func Compare(a, b domain.Dataset) domain.ComparisonResult {
	setA := a.Set()
	setB := b.Set()

	var common, onlyA, onlyB, union []domain.SpeciesName
	setA.Each(func(n domain.SpeciesName) {
		union = append(union, n)
		if setB.Contains(n) {
			common = append(common, n)
		} else {
			onlyA = append(onlyA, n)
		}
	})
	setB.Each(func(n domain.SpeciesName) {
		if !setA.Contains(n) {
			onlyB = append(onlyB, n)
			union = append(union, n)
		}
	})

	return domain.ComparisonResult{
		LabelA: a.Label,
		LabelB: b.Label,
		A:      setA,
		B:      setB,
		Common: domain.NewSpeciesSet(common...),
		OnlyA:  domain.NewSpeciesSet(onlyA...),
		OnlyB:  domain.NewSpeciesSet(onlyB...),
		Union:  domain.NewSpeciesSet(union...),
	}
}

// Names compares two plain string sequences under default labels.
func Names(a, b []string) domain.ComparisonResult {
	return Compare(
		domain.Dataset{Label: "A", Names: toNames(a)},
		domain.Dataset{Label: "B", Names: toNames(b)},
	)
}

// Check verifies the partition and inclusion-exclusion identities.
func Check(r domain.ComparisonResult) error {
	c := r.Counts()
	if c.Common+c.OnlyA+c.OnlyB != c.Union {
		return fmt.Errorf("partition: %d + %d + %d != %d", c.Common, c.OnlyA, c.OnlyB, c.Union)
	}
	if c.A+c.B-c.Common != c.Union {
		return fmt.Errorf("inclusion-exclusion: %d + %d - %d != %d", c.A, c.B, c.Common, c.Union)
	}
	return nil
}

func toNames(in []string) []domain.SpeciesName {
	out := make([]domain.SpeciesName, len(in))
	for i, s := range in {
		out[i] = domain.SpeciesName(s)
	}
	return out
}
