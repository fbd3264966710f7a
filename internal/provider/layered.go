package provider

import (
	"context"
	"fmt"
)

// Sample is one scoring case for a layered provider: a feature vector and
// the target score the configured network should reproduce.
type Sample struct {
	Features []float64
	Target   float64
}

// LayeredProvider binds a flat parameter vector into the weight matrices of
// a feed-forward scorer and rates it by how closely it reproduces the
// targets of a fixed sample set (negated mean squared error, so higher is
// better).
type LayeredProvider struct {
	layerSizes []int
	weights    [][][]float64
	samples    []Sample
	paramCount int
	configured bool
}

// NewLayeredProvider builds a provider for the given layer sizes, first
// entry being the input width and last entry the output width, which must
// be 1. Parameter count is the sum of each layer's node count times the
// previous layer's node count.
func NewLayeredProvider(layerSizes []int, samples []Sample) (*LayeredProvider, error) {
	if len(layerSizes) < 2 {
		return nil, fmt.Errorf("at least input and output layers are required, got %d", len(layerSizes))
	}
	if layerSizes[len(layerSizes)-1] != 1 {
		return nil, fmt.Errorf("output layer must have exactly one node, got %d", layerSizes[len(layerSizes)-1])
	}
	for i, size := range layerSizes {
		if size <= 0 {
			return nil, fmt.Errorf("layer %d size must be > 0, got %d", i, size)
		}
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("at least one sample is required")
	}

	paramCount := 0
	weights := make([][][]float64, 0, len(layerSizes)-1)
	for i := 1; i < len(layerSizes); i++ {
		rows := layerSizes[i]
		cols := layerSizes[i-1]
		matrix := make([][]float64, rows)
		for r := range matrix {
			matrix[r] = make([]float64, cols)
		}
		weights = append(weights, matrix)
		paramCount += rows * cols
	}

	copied := make([]Sample, len(samples))
	copy(copied, samples)
	for i, sample := range copied {
		if len(sample.Features) != layerSizes[0] {
			return nil, fmt.Errorf("sample %d has %d features, input layer expects %d", i, len(sample.Features), layerSizes[0])
		}
	}

	return &LayeredProvider{
		layerSizes: append([]int(nil), layerSizes...),
		weights:    weights,
		samples:    copied,
		paramCount: paramCount,
	}, nil
}

func (p *LayeredProvider) Name() string {
	return "layered"
}

func (p *LayeredProvider) ParamCount() int {
	return p.paramCount
}

// Configure slices the flat vector row-major into each layer's weight
// matrix, in layer order.
func (p *LayeredProvider) Configure(params []float64) error {
	if len(params) != p.paramCount {
		return fmt.Errorf("provider layered expects %d params, got %d", p.paramCount, len(params))
	}

	offset := 0
	for _, matrix := range p.weights {
		for _, row := range matrix {
			copy(row, params[offset:offset+len(row)])
			offset += len(row)
		}
	}
	p.configured = true
	return nil
}

func (p *LayeredProvider) Evaluate(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !p.configured {
		return 0, fmt.Errorf("provider layered is not configured")
	}

	totalSquaredError := 0.0
	for _, sample := range p.samples {
		out := p.score(sample.Features)
		diff := out - sample.Target
		totalSquaredError += diff * diff
	}
	return -totalSquaredError / float64(len(p.samples)), nil
}

// Score runs the configured network on one feature vector.
func (p *LayeredProvider) Score(features []float64) (float64, error) {
	if !p.configured {
		return 0, fmt.Errorf("provider layered is not configured")
	}
	if len(features) != p.layerSizes[0] {
		return 0, fmt.Errorf("expected %d features, got %d", p.layerSizes[0], len(features))
	}
	return p.score(features), nil
}

func (p *LayeredProvider) score(features []float64) float64 {
	values := features
	for _, matrix := range p.weights {
		next := make([]float64, len(matrix))
		for r, row := range matrix {
			total := 0.0
			for c, w := range row {
				total += w * values[c]
			}
			next[r] = total
		}
		values = next
	}
	return values[0]
}
