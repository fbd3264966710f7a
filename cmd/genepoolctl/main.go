package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"genepool/internal/evo"
	"genepool/internal/provider"
	"genepool/pkg/genepool"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command := "train"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "train":
		return runTrain(args)
	case "runs":
		return runRuns(args)
	case "providers":
		return runProviders()
	default:
		return fmt.Errorf("unknown command: %s (want train, runs, or providers)", command)
	}
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a JSON config; explicit flags win over config values")
	providerName := fs.String("provider", "sum", "registered fitness provider")
	genes := fs.Int("genes", 10, "gene vector length")
	pop := fs.Int("pop", 128, "population size")
	cycles := fs.Int("cycles", 5, "generation budget, -1 runs until convergence only")
	elitism := fs.Float64("elitism", 0.1, "fraction of members carried over unchanged")
	stopThreshold := fs.Float64("stop-threshold", 0.01, "relative mean-fitness change below which training stops")
	selection := fs.String("selection", "roulette", "selection strategy: roulette, rank, tournament")
	tournamentSize := fs.Int("tournament-size", 3, "sample size for tournament selection")
	crossover := fs.String("crossover", "uniform", "crossover strategy: one_point, k_point, uniform")
	crossoverPoints := fs.Int("crossover-points", 2, "cut points for k_point crossover")
	mutation := fs.String("mutation", "noisy", "mutation strategy: noisy, flip, swap")
	mutationRate := fs.Float64("mutation-rate", 0.1, "per-gene mutation probability")
	mutationVolume := fs.Float64("mutation-volume", 0.05, "relative perturbation for noisy mutation")
	initLow := fs.Float64("init-low", 0, "lower bound for initial gene values")
	initHigh := fs.Float64("init-high", 5, "upper bound for initial gene values")
	seed := fs.Int64("seed", 1, "random seed")
	workers := fs.Int("workers", 0, "evaluation workers, 0 uses all CPUs")
	storeKind := fs.String("store", "memory", "store backend: memory or sqlite")
	dbPath := fs.String("db", "genepool.db", "sqlite database path")
	savePath := fs.String("save", "", "write the final gene table to this path")
	loadPath := fs.String("load", "", "resume from a gene table at this path")
	quiet := fs.Bool("quiet", false, "suppress per-generation output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := genepool.RunRequest{
		Provider:          *providerName,
		Genes:             *genes,
		Population:        *pop,
		Cycles:            *cycles,
		Elitism:           *elitism,
		StoppingThreshold: *stopThreshold,
		Selection:         *selection,
		TournamentSize:    *tournamentSize,
		Crossover:         *crossover,
		CrossoverPoints:   *crossoverPoints,
		Mutation:          *mutation,
		MutationRate:      *mutationRate,
		MutationVolume:    *mutationVolume,
		InitLow:           *initLow,
		InitHigh:          *initHigh,
		Seed:              *seed,
		Workers:           *workers,
		SavePath:          *savePath,
		LoadPath:          *loadPath,
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if *configPath != "" {
		if err := applyConfig(*configPath, &req, set); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	if !*quiet {
		req.OnGeneration = func(stats evo.GenerationStats) {
			fmt.Printf("gen %d  best %.4f  mean %.4f (%+.3f%%)  evals %s\n",
				stats.Generation,
				stats.BestFitness,
				stats.MeanFitness,
				stats.Improvement*100,
				humanize.Comma(int64(stats.Evaluations)),
			)
		}
	}

	ctx := context.Background()
	client, err := genepool.New(ctx, genepool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s finished after %d generations (%s evaluations)\n",
		summary.RunID, summary.Generations, humanize.Comma(int64(summary.Evaluations)))
	fmt.Printf("best fitness: %.6f\n", summary.BestFitness)
	return nil
}

func runRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", "sqlite", "store backend: memory or sqlite")
	dbPath := fs.String("db", "genepool.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := genepool.New(ctx, genepool.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer client.Close()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, item := range runs {
		fmt.Printf("%s  %s  provider=%s pop=%d gens=%d best=%.6f\n",
			item.ID, item.CreatedAtUTC, item.Provider, item.Population, item.Generations, item.BestFitness)
	}
	return nil
}

func runProviders() error {
	for _, name := range provider.List() {
		fmt.Println(name)
	}
	return nil
}
