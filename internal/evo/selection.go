package evo

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrDegenerateWeights reports a weighted draw over candidates whose
// weights sum to zero, leaving the distribution undefined.
var ErrDegenerateWeights = errors.New("selection weights sum to zero")

// Selector draws one parent pair from the evaluated population. Calls are
// independent (selection with replacement across calls); within one pair
// the two parents are always distinct members.
type Selector interface {
	Name() string
	SelectPair(rng *rand.Rand, members []*Chromosome) (*Chromosome, *Chromosome, error)
}

// RouletteSelector draws each parent with probability proportional to its
// squared fitness, the second from the remaining members.
type RouletteSelector struct{}

func (RouletteSelector) Name() string {
	return "roulette"
}

func (RouletteSelector) SelectPair(rng *rand.Rand, members []*Chromosome) (*Chromosome, *Chromosome, error) {
	if rng == nil {
		return nil, nil, errors.New("random source is required")
	}
	if len(members) < 2 {
		return nil, nil, fmt.Errorf("at least 2 members are required, got %d", len(members))
	}

	pool := append([]*Chromosome(nil), members...)
	parents := make([]*Chromosome, 0, 2)
	for len(parents) < 2 {
		idx, err := rouletteDraw(rng, pool)
		if err != nil {
			return nil, nil, err
		}
		parents = append(parents, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return parents[0], parents[1], nil
}

func rouletteDraw(rng *rand.Rand, pool []*Chromosome) (int, error) {
	total := 0.0
	for _, member := range pool {
		f := member.Fitness()
		total += f * f
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: %d candidates", ErrDegenerateWeights, len(pool))
	}

	pick := rng.Float64() * total
	acc := 0.0
	for i, member := range pool {
		f := member.Fitness()
		acc += f * f
		if pick <= acc {
			return i, nil
		}
	}
	return len(pool) - 1, nil
}

// RankSelector sorts members ascending by fitness and draws with weight
// proportional to rank position, so higher fitness means linearly higher
// probability. The second parent is drawn from the remaining members with
// recomputed ranks.
type RankSelector struct{}

func (RankSelector) Name() string {
	return "rank"
}

func (RankSelector) SelectPair(rng *rand.Rand, members []*Chromosome) (*Chromosome, *Chromosome, error) {
	if rng == nil {
		return nil, nil, errors.New("random source is required")
	}
	if len(members) < 2 {
		return nil, nil, fmt.Errorf("at least 2 members are required, got %d", len(members))
	}

	pool := append([]*Chromosome(nil), members...)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Fitness() < pool[j].Fitness()
	})

	parents := make([]*Chromosome, 0, 2)
	for len(parents) < 2 {
		idx := rankDraw(rng, len(pool))
		parents = append(parents, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return parents[0], parents[1], nil
}

// rankDraw picks an index in [0, n) with weight i+1 for position i.
func rankDraw(rng *rand.Rand, n int) int {
	total := n * (n + 1) / 2
	pick := rng.Intn(total)
	acc := 0
	for i := 0; i < n; i++ {
		acc += i + 1
		if pick < acc {
			return i
		}
	}
	return n - 1
}

// TournamentSelector samples Size members without replacement and returns
// the top two by fitness.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) SelectPair(rng *rand.Rand, members []*Chromosome) (*Chromosome, *Chromosome, error) {
	if rng == nil {
		return nil, nil, errors.New("random source is required")
	}
	if len(members) < 2 {
		return nil, nil, fmt.Errorf("at least 2 members are required, got %d", len(members))
	}

	size := s.Size
	if size < 2 {
		size = 2
	}
	if size > len(members) {
		size = len(members)
	}

	entrants := make([]*Chromosome, 0, size)
	for _, idx := range rng.Perm(len(members))[:size] {
		entrants = append(entrants, members[idx])
	}
	sort.SliceStable(entrants, func(i, j int) bool {
		return entrants[i].Fitness() > entrants[j].Fitness()
	})
	return entrants[0], entrants[1], nil
}
