package provider

import "context"

// Provider is the fitness capability a chromosome is scored against. A
// provider is exclusively owned by one chromosome: Configure binds the
// chromosome's flat parameter vector into whatever internal structure the
// task expects, and Evaluate runs the task and reports a scalar fitness.
// Evaluate may be non-deterministic and may dominate wall-clock cost.
type Provider interface {
	Name() string
	ParamCount() int
	Configure(params []float64) error
	Evaluate(ctx context.Context) (float64, error)
}

// Factory builds a fresh, unshared provider instance. Every chromosome
// gets its own instance so evaluation can run concurrently across members.
type Factory func() (Provider, error)
