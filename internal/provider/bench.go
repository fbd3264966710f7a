package provider

import (
	"context"
	"fmt"
	"math"
)

// Built-in benchmark tasks. They stand in for expensive external
// simulations so training runs and end-to-end tests have real providers
// to score against.
const (
	SumProviderName       = "sum"
	SphereProviderName    = "sphere"
	RastriginProviderName = "rastrigin"
)

func init() {
	mustRegisterBench(SumProviderName, func(params []float64) float64 {
		total := 0.0
		for _, v := range params {
			total += v
		}
		return total
	})
	mustRegisterBench(SphereProviderName, func(params []float64) float64 {
		total := 0.0
		for _, v := range params {
			total += v * v
		}
		return -total
	})
	mustRegisterBench(RastriginProviderName, func(params []float64) float64 {
		total := 10.0 * float64(len(params))
		for _, v := range params {
			total += v*v - 10.0*math.Cos(2.0*math.Pi*v)
		}
		return -total
	})
}

func mustRegisterBench(name string, score func(params []float64) float64) {
	err := Register(name, func(genes int) (Provider, error) {
		if genes <= 0 {
			return nil, fmt.Errorf("gene count must be > 0, got %d", genes)
		}
		return &BenchProvider{name: name, score: score, params: make([]float64, genes)}, nil
	})
	if err != nil {
		panic(err)
	}
}

// BenchProvider scores a parameter vector with a pure function. Fitness
// conventions are maximization, so minimization benchmarks are negated.
type BenchProvider struct {
	name       string
	score      func(params []float64) float64
	params     []float64
	configured bool
}

func (p *BenchProvider) Name() string {
	return p.name
}

func (p *BenchProvider) ParamCount() int {
	return len(p.params)
}

func (p *BenchProvider) Configure(params []float64) error {
	if len(params) != len(p.params) {
		return fmt.Errorf("provider %s expects %d params, got %d", p.name, len(p.params), len(params))
	}
	copy(p.params, params)
	p.configured = true
	return nil
}

func (p *BenchProvider) Evaluate(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !p.configured {
		return 0, fmt.Errorf("provider %s is not configured", p.name)
	}
	return p.score(p.params), nil
}
