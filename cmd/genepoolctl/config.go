package main

import (
	"encoding/json"
	"os"

	"genepool/pkg/genepool"
)

// applyConfig merges a JSON config into the request. Only keys present in
// the document are applied, and a key never beats a flag the user set
// explicitly.
func applyConfig(path string, req *genepool.RunRequest, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["provider"]); ok && !set["provider"] {
		req.Provider = v
	}
	if v, ok := asInt(raw["genes"]); ok && !set["genes"] {
		req.Genes = v
	}
	if v, ok := asInt(raw["pop"]); ok && !set["pop"] {
		req.Population = v
	}
	if v, ok := asInt(raw["cycles"]); ok && !set["cycles"] {
		req.Cycles = v
	}
	if v, ok := asFloat64(raw["elitism"]); ok && !set["elitism"] {
		req.Elitism = v
	}
	if v, ok := asFloat64(raw["stop_threshold"]); ok && !set["stop-threshold"] {
		req.StoppingThreshold = v
	}
	if v, ok := asString(raw["selection"]); ok && !set["selection"] {
		req.Selection = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok && !set["tournament-size"] {
		req.TournamentSize = v
	}
	if v, ok := asString(raw["crossover"]); ok && !set["crossover"] {
		req.Crossover = v
	}
	if v, ok := asInt(raw["crossover_points"]); ok && !set["crossover-points"] {
		req.CrossoverPoints = v
	}
	if v, ok := asString(raw["mutation"]); ok && !set["mutation"] {
		req.Mutation = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok && !set["mutation-rate"] {
		req.MutationRate = v
	}
	if v, ok := asFloat64(raw["mutation_volume"]); ok && !set["mutation-volume"] {
		req.MutationVolume = v
	}
	if v, ok := asFloat64(raw["init_low"]); ok && !set["init-low"] {
		req.InitLow = v
	}
	if v, ok := asFloat64(raw["init_high"]); ok && !set["init-high"] {
		req.InitHigh = v
	}
	if v, ok := asInt64(raw["seed"]); ok && !set["seed"] {
		req.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok && !set["workers"] {
		req.Workers = v
	}
	if v, ok := asString(raw["save"]); ok && !set["save"] {
		req.SavePath = v
	}
	if v, ok := asString(raw["load"]); ok && !set["load"] {
		req.LoadPath = v
	}
	return nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
