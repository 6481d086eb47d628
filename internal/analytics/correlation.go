package analytics

import "math"

// MinCorrelationPairs is the smallest sample for which a correlation is reported.
const MinCorrelationPairs = 3

// Pair is one paired observation.
type Pair struct {
	X float64
	Y float64
}

// Pearson returns the Pearson coefficient of pairs rounded to two decimals.
// ok is false when the coefficient is undefined: fewer than MinCorrelationPairs
// pairs, or zero variance in either sample.
func Pearson(pairs []Pair) (float64, bool) {
	n := len(pairs)
	if n < MinCorrelationPairs {
		return 0, false
	}

	var sumX, sumY float64
	for _, p := range pairs {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for _, p := range pairs {
		dx := p.X - meanX
		dy := p.Y - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	den := math.Sqrt(varX * varY)
	if varX == 0 || varY == 0 || den == 0 {
		return 0, false
	}

	r := round2(cov / den)
	return math.Max(-1, math.Min(1, r)), true
}

// correlation wraps Pearson for JSON results where undefined renders as null.
func correlation(pairs []Pair) *float64 {
	r, ok := Pearson(pairs)
	if !ok {
		return nil
	}
	return &r
}
