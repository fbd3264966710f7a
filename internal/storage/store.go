package storage

import (
	"context"

	"genepool/internal/model"
)

// Store persists training runs: population checkpoints, run records, and
// per-run fitness history and diagnostics.
type Store interface {
	Init(ctx context.Context) error
	SaveCheckpoint(ctx context.Context, checkpoint model.PopulationCheckpoint) error
	GetCheckpoint(ctx context.Context, id string) (model.PopulationCheckpoint, bool, error)
	DeleteCheckpoint(ctx context.Context, id string) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
	SaveDiagnostics(ctx context.Context, runID string, diagnostics []model.GenerationDiagnostics) error
	GetDiagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, bool, error)
}
