package evo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"genepool/internal/provider"
)

// minGenerations guards the convergence check so early noisy generations
// cannot stop a run.
const minGenerations = 10

// GenerationStats describes one evaluated generation. Verbosity and
// logging are layered on top of this by callers via Config.Observer.
type GenerationStats struct {
	Generation    int
	BestFitness   float64
	MeanFitness   float64
	MinFitness    float64
	StdDevFitness float64
	Improvement   float64
	Evaluations   int
}

type Config struct {
	Size      int
	GeneCount int
	Provider  provider.Factory
	Selector  Selector
	Crossover Crossover
	Mutator   Mutator
	// Init draws one initial gene value. Defaults to uniform [0, 1).
	Init     func(rng *rand.Rand) float64
	Workers  int
	Seed     int64
	Observer func(GenerationStats)
}

// Population owns the chromosome collection and the strategy objects and
// drives the generational loop: evaluate, elitism, select, crossover,
// mutate, replace.
type Population struct {
	cfg Config
	rng *rand.Rand

	members         []*Chromosome
	generation      int
	best            *Chromosome
	meanFitness     float64
	prevMeanFitness float64
	evaluations     int
}

func NewPopulation(cfg Config) (*Population, error) {
	if cfg.Size < 2 {
		return nil, fmt.Errorf("population size must be >= 2, got %d", cfg.Size)
	}
	if cfg.GeneCount < 1 {
		return nil, fmt.Errorf("gene count must be >= 1, got %d", cfg.GeneCount)
	}
	if cfg.Provider == nil {
		return nil, errors.New("provider factory is required")
	}
	if cfg.Selector == nil {
		return nil, errors.New("selector is required")
	}
	if cfg.Crossover == nil {
		return nil, errors.New("crossover is required")
	}
	if cfg.Mutator == nil {
		return nil, errors.New("mutator is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Init == nil {
		cfg.Init = func(rng *rand.Rand) float64 { return rng.Float64() }
	}

	p := &Population{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}

	members := make([]*Chromosome, 0, cfg.Size)
	for s := 0; s < cfg.Size; s++ {
		genes := make([]float64, cfg.GeneCount)
		for i := range genes {
			genes[i] = cfg.Init(p.rng)
		}
		instance, err := cfg.Provider()
		if err != nil {
			return nil, fmt.Errorf("build provider for member %d: %w", s, err)
		}
		if instance.ParamCount() != cfg.GeneCount {
			return nil, fmt.Errorf("provider %s expects %d genes, config says %d", instance.Name(), instance.ParamCount(), cfg.GeneCount)
		}
		member, err := NewChromosome(genes, instance)
		if err != nil {
			return nil, fmt.Errorf("build member %d: %w", s, err)
		}
		members = append(members, member)
	}
	p.members = members
	return p, nil
}

type TrainOptions struct {
	// Cycles bounds the number of generations to breed. Negative means
	// run until convergence only; zero performs no generations and
	// returns the best of the initial evaluation.
	Cycles            int
	ElitismFraction   float64
	StoppingThreshold float64
	// SavePath, when set, writes the final gene table there.
	SavePath string
}

// Train runs the generational loop until the cycle budget is exhausted or
// the mean fitness converges, and returns the best chromosome of the last
// evaluated generation.
func (p *Population) Train(ctx context.Context, opts TrainOptions) (*Chromosome, error) {
	if opts.ElitismFraction < 0 || opts.ElitismFraction > 1 {
		return nil, fmt.Errorf("elitism fraction must be in [0, 1], got %v", opts.ElitismFraction)
	}
	if opts.StoppingThreshold < 0 {
		return nil, fmt.Errorf("stopping threshold must be >= 0, got %v", opts.StoppingThreshold)
	}

	eliteCount := int(opts.ElitismFraction * float64(p.cfg.Size))
	cycles := opts.Cycles

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.evaluate(ctx); err != nil {
			return nil, err
		}
		stats := p.collectStats()
		if p.cfg.Observer != nil {
			p.cfg.Observer(stats)
		}

		if cycles == 0 {
			break
		}
		if p.converged(opts.StoppingThreshold) {
			break
		}

		if err := p.advance(ctx, eliteCount); err != nil {
			return nil, err
		}
		if cycles > 0 {
			cycles--
		}
	}

	if opts.SavePath != "" {
		if err := p.SaveGenes(opts.SavePath); err != nil {
			return nil, err
		}
	}
	return p.best, nil
}

// evaluate computes fitness for every member on a bounded worker pool.
// Workers may finish out of order; results are applied back by the member
// index that produced them. Only the scalar fitness crosses back from a
// worker.
func (p *Population) evaluate(ctx context.Context) error {
	for i, member := range p.members {
		if err := member.Configure(); err != nil {
			return fmt.Errorf("configure member %d: %w", i, err)
		}
	}

	type job struct {
		idx    int
		member *Chromosome
	}
	type result struct {
		idx     int
		fitness float64
		err     error
	}

	jobs := make(chan job)
	results := make(chan result, len(p.members))

	workerCount := p.cfg.Workers
	if workerCount > len(p.members) {
		workerCount = len(p.members)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{idx: j.idx, err: err}
					continue
				}
				fitness, err := j.member.Evaluate(ctx)
				results <- result{idx: j.idx, fitness: fitness, err: err}
			}
		}()
	}

	for i := range p.members {
		jobs <- job{idx: i, member: p.members[i]}
	}
	close(jobs)

	wg.Wait()
	close(results)

	fitnesses := make([]float64, len(p.members))
	for res := range results {
		if res.err != nil {
			return fmt.Errorf("evaluate member %d: %w", res.idx, res.err)
		}
		fitnesses[res.idx] = res.fitness
	}
	for i, member := range p.members {
		member.setFitness(fitnesses[i])
	}
	p.evaluations += len(p.members)
	return nil
}

func (p *Population) collectStats() GenerationStats {
	fitnesses := make([]float64, len(p.members))
	bestIdx := 0
	for i, member := range p.members {
		fitnesses[i] = member.Fitness()
		if fitnesses[i] > fitnesses[bestIdx] {
			bestIdx = i
		}
	}
	p.best = p.members[bestIdx]
	p.prevMeanFitness = p.meanFitness
	p.meanFitness = stat.Mean(fitnesses, nil)

	minFitness := fitnesses[0]
	for _, f := range fitnesses[1:] {
		if f < minFitness {
			minFitness = f
		}
	}

	improvement := 0.0
	if p.prevMeanFitness != 0 {
		improvement = (p.meanFitness - p.prevMeanFitness) / math.Abs(p.prevMeanFitness)
	}

	return GenerationStats{
		Generation:    p.generation,
		BestFitness:   p.best.Fitness(),
		MeanFitness:   p.meanFitness,
		MinFitness:    minFitness,
		StdDevFitness: stat.StdDev(fitnesses, nil),
		Improvement:   improvement,
		Evaluations:   p.evaluations,
	}
}

func (p *Population) converged(threshold float64) bool {
	if p.generation < minGenerations {
		return false
	}
	if p.prevMeanFitness == 0 {
		return false
	}
	relative := math.Abs(p.meanFitness-p.prevMeanFitness) / math.Abs(p.prevMeanFitness)
	return relative < threshold
}

// advance breeds the next generation: elites survive unchanged, the rest
// are children of selected pairs, crossed over and mutated.
func (p *Population) advance(ctx context.Context, eliteCount int) error {
	ranked := append([]*Chromosome(nil), p.members...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness() > ranked[j].Fitness()
	})
	elites := ranked[:eliteCount]

	children := make([]*Chromosome, 0, p.cfg.Size-eliteCount)
	for len(children) < p.cfg.Size-eliteCount {
		if err := ctx.Err(); err != nil {
			return err
		}

		parent1, parent2, err := p.cfg.Selector.SelectPair(p.rng, p.members)
		if err != nil {
			return fmt.Errorf("select parents: %w", err)
		}
		child, err := Breed(p.rng, p.cfg.Crossover, parent1, parent2, p.cfg.Provider)
		if err != nil {
			return fmt.Errorf("breed child %d: %w", len(children), err)
		}
		if err := p.cfg.Mutator.Mutate(p.rng, child); err != nil {
			return fmt.Errorf("mutate child %d: %w", len(children), err)
		}
		children = append(children, child)
	}

	next := make([]*Chromosome, 0, p.cfg.Size)
	next = append(next, elites...)
	next = append(next, children...)
	if len(next) != p.cfg.Size {
		return fmt.Errorf("next generation has %d members, want %d", len(next), p.cfg.Size)
	}
	p.members = next
	p.generation++
	return nil
}

func (p *Population) Size() int {
	return p.cfg.Size
}

func (p *Population) GeneCount() int {
	return p.cfg.GeneCount
}

func (p *Population) Generation() int {
	return p.generation
}

func (p *Population) MeanFitness() float64 {
	return p.meanFitness
}

// Best returns the highest-fitness member of the most recently evaluated
// generation, nil before the first evaluation.
func (p *Population) Best() *Chromosome {
	return p.best
}

func (p *Population) Members() []*Chromosome {
	return append([]*Chromosome(nil), p.members...)
}

// GeneTable returns every member's gene vector in member order.
func (p *Population) GeneTable() [][]float64 {
	table := make([][]float64, len(p.members))
	for i, member := range p.members {
		table[i] = member.Genes()
	}
	return table
}
