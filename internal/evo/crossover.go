package evo

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"genepool/internal/provider"
)

// Crossover produces the per-index inheritance rule that recombines two
// parents into one child: rule[i] true takes gene i from the first parent,
// false from the second.
type Crossover interface {
	Name() string
	Rule(rng *rand.Rand, n int) ([]bool, error)
}

// Breed assembles a child from two parents according to the crossover's
// inheritance rule. The child owns fresh gene storage and a fresh provider
// instance; it aliases neither parent.
func Breed(rng *rand.Rand, crossover Crossover, parent1, parent2 *Chromosome, newProvider provider.Factory) (*Chromosome, error) {
	if crossover == nil {
		return nil, errors.New("crossover is required")
	}
	if parent1 == nil || parent2 == nil {
		return nil, errors.New("two parents are required")
	}
	if newProvider == nil {
		return nil, errors.New("provider factory is required")
	}
	n := parent1.Len()
	if parent2.Len() != n {
		return nil, fmt.Errorf("parent gene counts differ: %d vs %d", n, parent2.Len())
	}

	rule, err := crossover.Rule(rng, n)
	if err != nil {
		return nil, err
	}
	if len(rule) != n {
		return nil, fmt.Errorf("crossover %s produced rule of length %d, want %d", crossover.Name(), len(rule), n)
	}

	genes := make([]float64, n)
	for i, fromFirst := range rule {
		if fromFirst {
			genes[i], err = parent1.Gene(i)
		} else {
			genes[i], err = parent2.Gene(i)
		}
		if err != nil {
			return nil, err
		}
	}

	p, err := newProvider()
	if err != nil {
		return nil, err
	}
	return NewChromosome(genes, p)
}

// OnePointCrossover cuts once at a uniformly drawn point t; indices below t
// inherit from the first parent.
type OnePointCrossover struct{}

func (OnePointCrossover) Name() string {
	return "one_point"
}

func (OnePointCrossover) Rule(rng *rand.Rand, n int) ([]bool, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if n <= 0 {
		return nil, fmt.Errorf("gene count must be > 0, got %d", n)
	}

	t := rng.Intn(n)
	rule := make([]bool, n)
	for i := range rule {
		rule[i] = i < t
	}
	return rule, nil
}

// KPointCrossover draws K distinct cut points; the inheritance flag toggles
// at each cut, starting with the second parent before the first cut.
type KPointCrossover struct {
	K int
}

func (KPointCrossover) Name() string {
	return "k_point"
}

func (c KPointCrossover) Rule(rng *rand.Rand, n int) ([]bool, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if n <= 0 {
		return nil, fmt.Errorf("gene count must be > 0, got %d", n)
	}
	if c.K < 1 || c.K > n {
		return nil, fmt.Errorf("cut count must be in [1, %d], got %d", n, c.K)
	}

	cuts := rng.Perm(n)[:c.K]
	sort.Ints(cuts)
	return ruleFromCuts(cuts, n), nil
}

func ruleFromCuts(cuts []int, n int) []bool {
	rule := make([]bool, n)
	fromFirst := false
	next := 0
	for i := 0; i < n; i++ {
		for next < len(cuts) && cuts[next] == i {
			fromFirst = !fromFirst
			next++
		}
		rule[i] = fromFirst
	}
	return rule
}

// UniformCrossover inherits each index from the first parent independently
// with probability one half.
type UniformCrossover struct{}

func (UniformCrossover) Name() string {
	return "uniform"
}

func (UniformCrossover) Rule(rng *rand.Rand, n int) ([]bool, error) {
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	if n <= 0 {
		return nil, fmt.Errorf("gene count must be > 0, got %d", n)
	}

	rule := make([]bool, n)
	for i := range rule {
		rule[i] = rng.Float64() < 0.5
	}
	return rule, nil
}
