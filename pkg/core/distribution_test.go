package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestDistribution1D_WarpProportional(t *testing.T) {
	// Weights 1:3 should be selected in a 1:3 ratio
	dist := NewDistribution1D([]float64{1.0, 3.0})

	random := rand.New(rand.NewSource(42))
	counts := [2]int{}
	const draws = 100000
	for i := 0; i < draws; i++ {
		counts[dist.Warp(random.Float64())]++
	}

	fraction := float64(counts[0]) / float64(draws)
	if math.Abs(fraction-0.25) > 0.01 {
		t.Errorf("Expected first item selected ~25%% of draws, got %.1f%%", fraction*100)
	}
}

func TestDistribution1D_Deterministic(t *testing.T) {
	dist := NewDistribution1D([]float64{0.5, 1.5, 2.0})

	for _, u := range []float64{0.0, 0.1, 0.125, 0.5, 0.999} {
		first := dist.Warp(u)
		for i := 0; i < 5; i++ {
			if dist.Warp(u) != first {
				t.Fatalf("Warp(%f) not deterministic", u)
			}
		}
	}
}

func TestDistribution1D_Boundaries(t *testing.T) {
	dist := NewDistribution1D([]float64{1.0, 1.0})

	if idx := dist.Warp(0.0); idx != 0 {
		t.Errorf("Warp(0) = %d, expected 0", idx)
	}
	if idx := dist.Warp(0.9999999); idx != 1 {
		t.Errorf("Warp(~1) = %d, expected 1", idx)
	}
}

func TestDistribution1D_ZeroWeightSkipped(t *testing.T) {
	dist := NewDistribution1D([]float64{0.0, 1.0, 0.0, 1.0})

	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		idx := dist.Warp(random.Float64())
		if idx == 0 || idx == 2 {
			t.Fatalf("Selected zero-weight item %d", idx)
		}
	}
}

func TestDistribution1D_PdfSumsToOne(t *testing.T) {
	weights := []float64{2.0, 0.0, 5.0, 3.0}
	dist := NewDistribution1D(weights)

	sum := 0.0
	for i := range weights {
		sum += dist.Pdf(i)
	}
	if math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("Pdf sum = %f, expected 1", sum)
	}

	if math.Abs(dist.Pdf(2)-0.5) > 1e-12 {
		t.Errorf("Pdf(2) = %f, expected 0.5", dist.Pdf(2))
	}
	if dist.Pdf(-1) != 0 || dist.Pdf(4) != 0 {
		t.Error("Out-of-range Pdf should be 0")
	}
}

func TestDistribution1D_TotalPreserved(t *testing.T) {
	dist := NewDistribution1D([]float64{1.5, 2.5})
	if math.Abs(dist.Total()-4.0) > 1e-12 {
		t.Errorf("Total = %f, expected 4", dist.Total())
	}
	if dist.Count() != 2 {
		t.Errorf("Count = %d, expected 2", dist.Count())
	}
}

func TestDistribution1D_RejectsNegativeWeights(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for negative weight")
		}
	}()
	NewDistribution1D([]float64{1.0, -0.5})
}
