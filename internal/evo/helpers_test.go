package evo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"genepool/internal/provider"
)

// sumProvider scores a vector by the sum of its entries.
type sumProvider struct {
	params     []float64
	configured bool
	failWith   error
}

func newSumProvider(genes int) *sumProvider {
	return &sumProvider{params: make([]float64, genes)}
}

func (p *sumProvider) Name() string {
	return "test-sum"
}

func (p *sumProvider) ParamCount() int {
	return len(p.params)
}

func (p *sumProvider) Configure(params []float64) error {
	if len(params) != len(p.params) {
		return fmt.Errorf("expected %d params, got %d", len(p.params), len(params))
	}
	copy(p.params, params)
	p.configured = true
	return nil
}

func (p *sumProvider) Evaluate(_ context.Context) (float64, error) {
	if p.failWith != nil {
		return 0, p.failWith
	}
	if !p.configured {
		return 0, errors.New("not configured")
	}
	total := 0.0
	for _, v := range p.params {
		total += v
	}
	return total, nil
}

func sumFactory(genes int) provider.Factory {
	return func() (provider.Provider, error) {
		return newSumProvider(genes), nil
	}
}

func newTestChromosome(t *testing.T, genes ...float64) *Chromosome {
	t.Helper()
	c, err := NewChromosome(genes, newSumProvider(len(genes)))
	if err != nil {
		t.Fatalf("new chromosome: %v", err)
	}
	return c
}

func newScoredChromosome(t *testing.T, fitness float64, genes ...float64) *Chromosome {
	t.Helper()
	c := newTestChromosome(t, genes...)
	c.setFitness(fitness)
	return c
}
