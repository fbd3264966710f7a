package evo

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func TestNoisyMutationScalesGenes(t *testing.T) {
	c := newTestChromosome(t, 2, -4, 8)
	m := NoisyMutator{Rate: 1, Volume: 0.5}

	if err := m.Mutate(rand.New(rand.NewSource(17)), c); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	genes := c.Genes()
	if len(genes) != 3 {
		t.Fatalf("gene count changed: %d", len(genes))
	}
	for i, orig := range []float64{2, -4, 8} {
		low, high := orig*0.5, orig*1.5
		if genes[i] != low && genes[i] != high {
			t.Fatalf("gene %d = %v, want %v or %v", i, genes[i], low, high)
		}
	}
}

func TestNoisyMutationZeroRateIsNoop(t *testing.T) {
	c := newTestChromosome(t, 1, 2, 3)
	m := NoisyMutator{Rate: 0, Volume: 0.5}

	if err := m.Mutate(rand.New(rand.NewSource(1)), c); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		got, err := c.Gene(i)
		if err != nil {
			t.Fatalf("gene: %v", err)
		}
		if got != want {
			t.Fatalf("gene %d = %v, want %v", i, got, want)
		}
	}
}

func TestFlipMutationNegatesGenes(t *testing.T) {
	c := newTestChromosome(t, 1, -2, 0.5)
	m := FlipMutator{Rate: 1}

	if err := m.Mutate(rand.New(rand.NewSource(1)), c); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	for i, want := range []float64{-1, 2, -0.5} {
		got, err := c.Gene(i)
		if err != nil {
			t.Fatalf("gene: %v", err)
		}
		if got != want {
			t.Fatalf("gene %d = %v, want %v", i, got, want)
		}
	}
}

func TestSwapMutationExchangesTwoGenes(t *testing.T) {
	// Rate 0.5 doubles to a certain single trial per call.
	c := newTestChromosome(t, 1, 2, 3, 4)
	m := SwapMutator{Rate: 0.5}

	if err := m.Mutate(rand.New(rand.NewSource(23)), c); err != nil {
		t.Fatalf("mutate: %v", err)
	}

	genes := c.Genes()
	if len(genes) != 4 {
		t.Fatalf("gene count changed: %d", len(genes))
	}

	sorted := append([]float64(nil), genes...)
	sort.Float64s(sorted)
	for i, want := range []float64{1, 2, 3, 4} {
		if sorted[i] != want {
			t.Fatalf("swap changed gene values: %v", genes)
		}
	}

	moved := 0
	for i, want := range []float64{1, 2, 3, 4} {
		if genes[i] != want {
			moved++
		}
	}
	if moved != 2 {
		t.Fatalf("expected exactly two positions to move, got %d (%v)", moved, genes)
	}
}

func TestSwapMutationSingleGeneIsNoop(t *testing.T) {
	c := newTestChromosome(t, 5)
	m := SwapMutator{Rate: 1}

	if err := m.Mutate(rand.New(rand.NewSource(1)), c); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	got, err := c.Gene(0)
	if err != nil {
		t.Fatalf("gene: %v", err)
	}
	if got != 5 {
		t.Fatalf("gene = %v, want 5", got)
	}
}

func TestSwapMutationRateZeroNeverFires(t *testing.T) {
	c := newTestChromosome(t, 1, 2, 3)
	m := SwapMutator{Rate: 0}
	rng := rand.New(rand.NewSource(29))

	for i := 0; i < 100; i++ {
		if err := m.Mutate(rng, c); err != nil {
			t.Fatalf("mutate: %v", err)
		}
	}
	for i, want := range []float64{1, 2, 3} {
		got, err := c.Gene(i)
		if err != nil {
			t.Fatalf("gene: %v", err)
		}
		if got != want {
			t.Fatalf("gene %d = %v, want %v", i, got, want)
		}
	}
}

func TestNoisyMutationRateIsApproximatelyRespected(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	m := NoisyMutator{Rate: 0.3, Volume: 0.5}

	mutated := 0
	total := 0
	for trial := 0; trial < 200; trial++ {
		c := newTestChromosome(t, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
		if err := m.Mutate(rng, c); err != nil {
			t.Fatalf("mutate: %v", err)
		}
		for _, gene := range c.Genes() {
			total++
			if gene != 1 {
				mutated++
			}
		}
	}

	rate := float64(mutated) / float64(total)
	if math.Abs(rate-0.3) > 0.05 {
		t.Fatalf("observed mutation rate %v, want about 0.3", rate)
	}
}
