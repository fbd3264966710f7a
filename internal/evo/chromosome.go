package evo

import (
	"context"
	"errors"
	"fmt"

	"genepool/internal/provider"
)

var ErrGeneIndexOutOfRange = errors.New("gene index out of range")

// Chromosome is one candidate solution: a fixed-length gene vector plus the
// fitness provider it is scored against. The provider instance is owned
// exclusively by this chromosome and is re-configured, never replaced, when
// genes change.
type Chromosome struct {
	genes    []float64
	fitness  float64
	provider provider.Provider
}

func NewChromosome(genes []float64, p provider.Provider) (*Chromosome, error) {
	if p == nil {
		return nil, errors.New("provider is required")
	}
	if len(genes) != p.ParamCount() {
		return nil, fmt.Errorf("provider %s expects %d genes, got %d", p.Name(), p.ParamCount(), len(genes))
	}

	c := &Chromosome{
		genes:    append([]float64(nil), genes...),
		provider: p,
	}
	if err := c.Configure(); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure rebinds the current genes into the provider. It must run before
// fitness is read whenever genes have changed.
func (c *Chromosome) Configure() error {
	return c.provider.Configure(c.genes)
}

// Evaluate runs the provider's task. It does not store the result; the
// coordinator applies fitness values back by member index.
func (c *Chromosome) Evaluate(ctx context.Context) (float64, error) {
	return c.provider.Evaluate(ctx)
}

// Fitness reports the score from the most recent evaluation pass. It is
// zero before the first evaluation and stale after genes change.
func (c *Chromosome) Fitness() float64 {
	return c.fitness
}

func (c *Chromosome) setFitness(v float64) {
	c.fitness = v
}

func (c *Chromosome) Len() int {
	return len(c.genes)
}

func (c *Chromosome) Gene(i int) (float64, error) {
	if i < 0 || i >= len(c.genes) {
		return 0, fmt.Errorf("%w: %d (length %d)", ErrGeneIndexOutOfRange, i, len(c.genes))
	}
	return c.genes[i], nil
}

func (c *Chromosome) SetGene(i int, v float64) error {
	if i < 0 || i >= len(c.genes) {
		return fmt.Errorf("%w: %d (length %d)", ErrGeneIndexOutOfRange, i, len(c.genes))
	}
	c.genes[i] = v
	return nil
}

// Genes returns an independent copy of the gene vector.
func (c *Chromosome) Genes() []float64 {
	return append([]float64(nil), c.genes...)
}

// WriteGenes replaces the whole gene vector and reconfigures the provider.
// The stored fitness is reset; it is stale until the next evaluation.
func (c *Chromosome) WriteGenes(genes []float64) error {
	if len(genes) != len(c.genes) {
		return fmt.Errorf("expected %d genes, got %d", len(c.genes), len(genes))
	}
	copy(c.genes, genes)
	c.fitness = 0
	return c.Configure()
}
