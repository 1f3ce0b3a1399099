package core

import "sort"

// Distribution1D is a discrete distribution over weighted items.
// Warp maps a uniform scalar to an item index with probability proportional
// to the item's weight; the mapping is deterministic for a fixed weight set.
type Distribution1D struct {
	cdf   []float64
	total float64
}

// NewDistribution1D builds a distribution from non-negative weights
func NewDistribution1D(weights []float64) *Distribution1D {
	if len(weights) == 0 {
		panic("Distribution1D requires at least one weight")
	}

	cdf := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			panic("Distribution1D weights must be non-negative")
		}
		total += w
		cdf[i] = total
	}

	// Normalize. A zero total degenerates to uniform selection.
	if total > 0 {
		for i := range cdf {
			cdf[i] /= total
		}
	} else {
		n := float64(len(cdf))
		for i := range cdf {
			cdf[i] = float64(i+1) / n
		}
	}
	cdf[len(cdf)-1] = 1.0

	return &Distribution1D{cdf: cdf, total: total}
}

// Warp maps a uniform scalar in [0, 1) to an index with probability
// proportional to the index's weight
func (d *Distribution1D) Warp(u float64) int {
	idx := sort.SearchFloat64s(d.cdf, u)
	// SearchFloat64s returns the first i with cdf[i] >= u; an exact boundary
	// hit belongs to the next non-empty bucket (repeated cdf values are
	// zero-weight buckets)
	for idx < len(d.cdf)-1 && u == d.cdf[idx] {
		idx++
	}
	return idx
}

// Pdf returns the selection probability of the given index
func (d *Distribution1D) Pdf(i int) float64 {
	if i < 0 || i >= len(d.cdf) {
		return 0
	}
	if i == 0 {
		return d.cdf[0]
	}
	return d.cdf[i] - d.cdf[i-1]
}

// Total returns the sum of the weights the distribution was built from
func (d *Distribution1D) Total() float64 {
	return d.total
}

// Count returns the number of items in the distribution
func (d *Distribution1D) Count() int {
	return len(d.cdf)
}
