package compare

import (
	"fmt"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// Ratio returns part/whole, or 0 when whole is 0.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// Percent formats a ratio with two decimals, e.g. 0.1234 -> "12.34%".
func Percent(r float64) string {
	return fmt.Sprintf("%.2f%%", r*100)
}

// Ratios holds the three share statistics reported in the workbook overview.
type Ratios struct {
	// OnlyAOfA is |onlyA| / |A|.
	OnlyAOfA float64
	// OnlyBOfB is |onlyB| / |B|.
	OnlyBOfB float64
	// CommonOfUnion is |common| / |union|.
	CommonOfUnion float64
}

// RatiosOf computes the share statistics of a result. Empty denominators yield 0.
func RatiosOf(r domain.ComparisonResult) Ratios {
	c := r.Counts()
	return Ratios{
		OnlyAOfA:      Ratio(c.OnlyA, c.A),
		OnlyBOfB:      Ratio(c.OnlyB, c.B),
		CommonOfUnion: Ratio(c.Common, c.Union),
	}
}
