package evo

import "fmt"

// StrategyParams carries the tunables of the parameterized strategies.
type StrategyParams struct {
	TournamentSize  int
	CrossoverPoints int
	MutationRate    float64
	MutationVolume  float64
}

func NewSelector(name string, params StrategyParams) (Selector, error) {
	switch name {
	case "", "roulette":
		return RouletteSelector{}, nil
	case "rank":
		return RankSelector{}, nil
	case "tournament":
		return TournamentSelector{Size: params.TournamentSize}, nil
	default:
		return nil, fmt.Errorf("unsupported selector: %s", name)
	}
}

func NewCrossover(name string, params StrategyParams) (Crossover, error) {
	switch name {
	case "", "uniform":
		return UniformCrossover{}, nil
	case "one_point":
		return OnePointCrossover{}, nil
	case "k_point":
		if params.CrossoverPoints < 1 {
			return nil, fmt.Errorf("k_point crossover requires at least 1 cut point, got %d", params.CrossoverPoints)
		}
		return KPointCrossover{K: params.CrossoverPoints}, nil
	default:
		return nil, fmt.Errorf("unsupported crossover: %s", name)
	}
}

func NewMutator(name string, params StrategyParams) (Mutator, error) {
	if params.MutationRate < 0 || params.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1], got %v", params.MutationRate)
	}
	switch name {
	case "", "noisy":
		return NoisyMutator{Rate: params.MutationRate, Volume: params.MutationVolume}, nil
	case "flip":
		return FlipMutator{Rate: params.MutationRate}, nil
	case "swap":
		return SwapMutator{Rate: params.MutationRate}, nil
	default:
		return nil, fmt.Errorf("unsupported mutator: %s", name)
	}
}
