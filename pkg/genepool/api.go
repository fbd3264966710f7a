package genepool

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"genepool/internal/evo"
	"genepool/internal/model"
	"genepool/internal/provider"
	"genepool/internal/storage"
)

const defaultDBPath = "genepool.db"

type Options struct {
	StoreKind string
	DBPath    string
}

// Client wires providers, strategies, and the store into a training
// entry point.
type Client struct {
	store storage.Store
}

func New(ctx context.Context, opts Options) (*Client, error) {
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	store, err := storage.NewStore(opts.StoreKind, dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type RunRequest struct {
	RunID             string
	Provider          string
	Genes             int
	Population        int
	Cycles            int
	Elitism           float64
	StoppingThreshold float64
	Selection         string
	TournamentSize    int
	Crossover         string
	CrossoverPoints   int
	Mutation          string
	MutationRate      float64
	MutationVolume    float64
	// InitLow/InitHigh bound the uniform draw for initial gene values.
	InitLow  float64
	InitHigh float64
	Seed     int64
	Workers  int
	SavePath string
	LoadPath string
	// OnGeneration, when set, observes every evaluated generation.
	OnGeneration func(evo.GenerationStats)
}

type RunSummary struct {
	RunID            string
	Provider         string
	Generations      int
	Evaluations      int
	BestFitness      float64
	BestGenes        []float64
	BestByGeneration []float64
}

// Run trains one population to completion and records the checkpoint,
// fitness history, and per-generation diagnostics under a fresh run ID.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Provider == "" {
		return RunSummary{}, fmt.Errorf("provider name is required")
	}
	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	genes := req.Genes
	if genes <= 0 {
		return RunSummary{}, fmt.Errorf("gene count must be > 0, got %d", genes)
	}
	factory, err := provider.ResolveFactory(req.Provider, genes)
	if err != nil {
		return RunSummary{}, err
	}

	params := evo.StrategyParams{
		TournamentSize:  req.TournamentSize,
		CrossoverPoints: req.CrossoverPoints,
		MutationRate:    req.MutationRate,
		MutationVolume:  req.MutationVolume,
	}
	selector, err := evo.NewSelector(req.Selection, params)
	if err != nil {
		return RunSummary{}, err
	}
	crossover, err := evo.NewCrossover(req.Crossover, params)
	if err != nil {
		return RunSummary{}, err
	}
	mutator, err := evo.NewMutator(req.Mutation, params)
	if err != nil {
		return RunSummary{}, err
	}

	initLow, initHigh := req.InitLow, req.InitHigh
	if initLow == 0 && initHigh == 0 {
		initHigh = 1
	}
	if initHigh <= initLow {
		return RunSummary{}, fmt.Errorf("init range is empty: [%v, %v)", initLow, initHigh)
	}

	var (
		history     []float64
		diagnostics []model.GenerationDiagnostics
	)
	population, err := evo.NewPopulation(evo.Config{
		Size:      req.Population,
		GeneCount: genes,
		Provider:  factory,
		Selector:  selector,
		Crossover: crossover,
		Mutator:   mutator,
		Init: func(rng *rand.Rand) float64 {
			return initLow + rng.Float64()*(initHigh-initLow)
		},
		Workers: req.Workers,
		Seed:    req.Seed,
		Observer: func(stats evo.GenerationStats) {
			history = append(history, stats.BestFitness)
			diagnostics = append(diagnostics, model.GenerationDiagnostics{
				Generation:    stats.Generation,
				BestFitness:   stats.BestFitness,
				MeanFitness:   stats.MeanFitness,
				MinFitness:    stats.MinFitness,
				StdDevFitness: stats.StdDevFitness,
				Evaluations:   stats.Evaluations,
			})
			if req.OnGeneration != nil {
				req.OnGeneration(stats)
			}
		},
	})
	if err != nil {
		return RunSummary{}, err
	}

	if req.LoadPath != "" {
		if err := population.LoadGenes(req.LoadPath); err != nil {
			return RunSummary{}, fmt.Errorf("load gene table: %w", err)
		}
	}

	best, err := population.Train(ctx, evo.TrainOptions{
		Cycles:            req.Cycles,
		ElitismFraction:   req.Elitism,
		StoppingThreshold: req.StoppingThreshold,
		SavePath:          req.SavePath,
	})
	if err != nil {
		return RunSummary{}, err
	}

	evaluations := 0
	if len(diagnostics) > 0 {
		evaluations = diagnostics[len(diagnostics)-1].Evaluations
	}
	summary := RunSummary{
		RunID:            runID,
		Provider:         req.Provider,
		Generations:      population.Generation(),
		Evaluations:      evaluations,
		BestFitness:      best.Fitness(),
		BestGenes:        best.Genes(),
		BestByGeneration: history,
	}

	if err := c.record(ctx, req, population, summary, diagnostics); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

func (c *Client) record(ctx context.Context, req RunRequest, population *evo.Population, summary RunSummary, diagnostics []model.GenerationDiagnostics) error {
	versioned := model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}

	if err := c.store.SaveRun(ctx, model.RunRecord{
		VersionedRecord: versioned,
		ID:              summary.RunID,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Provider:        req.Provider,
		Seed:            req.Seed,
		Population:      population.Size(),
		Generations:     summary.Generations,
		BestFitness:     summary.BestFitness,
	}); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	if err := c.store.SaveCheckpoint(ctx, model.PopulationCheckpoint{
		VersionedRecord: versioned,
		ID:              summary.RunID,
		Provider:        req.Provider,
		Generation:      summary.Generations,
		Genes:           population.GeneTable(),
	}); err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	if err := c.store.SaveFitnessHistory(ctx, summary.RunID, summary.BestByGeneration); err != nil {
		return fmt.Errorf("save fitness history: %w", err)
	}
	if err := c.store.SaveDiagnostics(ctx, summary.RunID, diagnostics); err != nil {
		return fmt.Errorf("save diagnostics: %w", err)
	}
	return nil
}

// Runs lists recorded runs, oldest first.
func (c *Client) Runs(ctx context.Context) ([]model.RunRecord, error) {
	return c.store.ListRuns(ctx)
}

// Checkpoint fetches the gene table recorded for a run.
func (c *Client) Checkpoint(ctx context.Context, runID string) (model.PopulationCheckpoint, bool, error) {
	return c.store.GetCheckpoint(ctx, runID)
}

// Diagnostics fetches the per-generation diagnostics recorded for a run.
func (c *Client) Diagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, bool, error) {
	return c.store.GetDiagnostics(ctx, runID)
}
