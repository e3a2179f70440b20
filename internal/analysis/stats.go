// ABOUTME: Statistics kernel: Pearson correlation over paired samples.
// ABOUTME: Point-biserial correlation is the same function fed a 0/1 series.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// Correlation is either a computed coefficient in [-1, 1] or a marker that
// the data was insufficient. Use Value to get at the coefficient.
type Correlation struct {
	r  float64
	ok bool
}

// Computed wraps a coefficient, clamping floating error into [-1, 1].
func Computed(r float64) Correlation {
	return Correlation{r: max(-1, min(1, r)), ok: true}
}

// InsufficientData is the correlation of degenerate input.
func InsufficientData() Correlation {
	return Correlation{}
}

// Value returns the coefficient and whether one was computed.
func (c Correlation) Value() (float64, bool) {
	return c.r, c.ok
}

// IsComputed reports whether a coefficient exists.
func (c Correlation) IsComputed() bool {
	return c.ok
}

// Magnitude returns |r|, or 0 when insufficient.
func (c Correlation) Magnitude() float64 {
	if !c.ok {
		return 0
	}
	return math.Abs(c.r)
}

func (c Correlation) String() string {
	if !c.ok {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f", c.r)
}

// MarshalJSON encodes the coefficient, or null when insufficient.
func (c Correlation) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("null"), nil
	}
	return json.Marshal(c.r)
}

// UnmarshalJSON accepts a number or null.
func (c *Correlation) UnmarshalJSON(b []byte) error {
	var r *float64
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	if r == nil {
		*c = InsufficientData()
		return nil
	}
	*c = Computed(*r)
	return nil
}

// PearsonCorrelation computes
//
//	r = (nΣxy − ΣxΣy) / sqrt((nΣx² − (Σx)²)(nΣy² − (Σy)²))
//
// It returns InsufficientData when the lengths differ, fewer than three
// points are given, or either series has no variance.
func PearsonCorrelation(x, y []float64) Correlation {
	n := len(x)
	if n != len(y) || n <= 2 {
		return InsufficientData()
	}
	if isConstant(x) || isConstant(y) {
		return InsufficientData()
	}

	nf := float64(n)
	sumX, sumY := floats.Sum(x), floats.Sum(y)
	sumXY := floats.Dot(x, y)
	sumX2, sumY2 := floats.Dot(x, x), floats.Dot(y, y)

	num := nf*sumXY - sumX*sumY
	den := math.Sqrt((nf*sumX2 - sumX*sumX) * (nf*sumY2 - sumY*sumY))
	if den == 0 || math.IsNaN(den) {
		return InsufficientData()
	}
	return Computed(num / den)
}

func isConstant(xs []float64) bool {
	for _, v := range xs[1:] {
		if v != xs[0] {
			return false
		}
	}
	return true
}

// mean returns the arithmetic mean, or 0 for an empty slice.
func mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

func ptr(v float64) *float64 {
	return &v
}
