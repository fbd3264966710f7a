package evo

import (
	"errors"
	"math/rand"
)

// Mutator perturbs a chromosome's genes in place. Mutators are stateless
// across calls; every call draws fresh randomness.
type Mutator interface {
	Name() string
	Mutate(rng *rand.Rand, c *Chromosome) error
}

// NoisyMutator replaces each gene, independently with probability Rate,
// by gene * (1 ± Volume) with the sign drawn uniformly. The perturbation
// is relative, not additive.
type NoisyMutator struct {
	Rate   float64
	Volume float64
}

func (NoisyMutator) Name() string {
	return "noisy"
}

func (m NoisyMutator) Mutate(rng *rand.Rand, c *Chromosome) error {
	if rng == nil {
		return errors.New("random source is required")
	}
	if c == nil {
		return errors.New("chromosome is required")
	}

	for i := 0; i < c.Len(); i++ {
		if rng.Float64() >= m.Rate {
			continue
		}
		gene, err := c.Gene(i)
		if err != nil {
			return err
		}
		sign := 1.0
		if rng.Intn(2) == 0 {
			sign = -1.0
		}
		if err := c.SetGene(i, gene*(1.0+sign*m.Volume)); err != nil {
			return err
		}
	}
	return nil
}

// FlipMutator negates each gene independently with probability Rate.
type FlipMutator struct {
	Rate float64
}

func (FlipMutator) Name() string {
	return "flip"
}

func (m FlipMutator) Mutate(rng *rand.Rand, c *Chromosome) error {
	if rng == nil {
		return errors.New("random source is required")
	}
	if c == nil {
		return errors.New("chromosome is required")
	}

	for i := 0; i < c.Len(); i++ {
		if rng.Float64() >= m.Rate {
			continue
		}
		gene, err := c.Gene(i)
		if err != nil {
			return err
		}
		if err := c.SetGene(i, -gene); err != nil {
			return err
		}
	}
	return nil
}

// SwapMutator exchanges the values of two distinct gene positions. Unlike
// the per-gene mutators it runs a single Bernoulli trial per call, at
// twice the configured rate.
type SwapMutator struct {
	Rate float64
}

func (SwapMutator) Name() string {
	return "swap"
}

func (m SwapMutator) Mutate(rng *rand.Rand, c *Chromosome) error {
	if rng == nil {
		return errors.New("random source is required")
	}
	if c == nil {
		return errors.New("chromosome is required")
	}
	if c.Len() < 2 {
		return nil
	}
	if rng.Float64() >= 2.0*m.Rate {
		return nil
	}

	positions := rng.Perm(c.Len())[:2]
	first, err := c.Gene(positions[0])
	if err != nil {
		return err
	}
	second, err := c.Gene(positions[1])
	if err != nil {
		return err
	}
	if err := c.SetGene(positions[0], second); err != nil {
		return err
	}
	return c.SetGene(positions[1], first)
}
