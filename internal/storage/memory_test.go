package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"genepool/internal/model"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	require.NoError(t, store.Init(context.Background()))
	return store
}

func testCheckpoint(id string) model.PopulationCheckpoint {
	return model.PopulationCheckpoint{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion,
		},
		ID:         id,
		Provider:   "sum",
		Generation: 3,
		Genes:      [][]float64{{1, 2}, {3, 4}},
	}
}

func TestMemoryStoreCheckpointLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetCheckpoint(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	checkpoint := testCheckpoint("cp-1")
	require.NoError(t, store.SaveCheckpoint(ctx, checkpoint))

	got, found, err := store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, checkpoint, got)

	require.NoError(t, store.DeleteCheckpoint(ctx, "cp-1"))
	_, found, err = store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreCheckpointIsDeepCopied(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	checkpoint := testCheckpoint("cp-1")
	require.NoError(t, store.SaveCheckpoint(ctx, checkpoint))

	// Mutating the caller's copy must not reach the stored one.
	checkpoint.Genes[0][0] = 99

	got, found, err := store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, float64(1), got.Genes[0][0])

	// Same for the returned copy.
	got.Genes[1][0] = 77
	again, _, err := store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.Equal(t, float64(3), again.Genes[1][0])
}

func TestMemoryStoreListRunsSortedByCreation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, run := range []model.RunRecord{
		{ID: "b", CreatedAtUTC: "2026-08-30T10:00:00Z"},
		{ID: "a", CreatedAtUTC: "2026-08-30T10:00:00Z"},
		{ID: "c", CreatedAtUTC: "2026-08-29T08:00:00Z"},
	} {
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "c", runs[0].ID)
	require.Equal(t, "a", runs[1].ID)
	require.Equal(t, "b", runs[2].ID)
}

func TestMemoryStoreRunLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetRun(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	run := model.RunRecord{ID: "run-1", Provider: "sphere", BestFitness: -0.25}
	require.NoError(t, store.SaveRun(ctx, run))

	got, found, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, run, got)
}

func TestMemoryStoreFitnessHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetFitnessHistory(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	history := []float64{1, 2, 3}
	require.NoError(t, store.SaveFitnessHistory(ctx, "run-1", history))
	history[0] = 99

	got, found, err := store.GetFitnessHistory(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []float64{1, 2, 3}, got)
}

func TestMemoryStoreDiagnostics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.GetDiagnostics(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	diagnostics := []model.GenerationDiagnostics{
		{Generation: 0, BestFitness: 4, MeanFitness: 2, Evaluations: 8},
		{Generation: 1, BestFitness: 5, MeanFitness: 3, Evaluations: 16},
	}
	require.NoError(t, store.SaveDiagnostics(ctx, "run-1", diagnostics))

	got, found, err := store.GetDiagnostics(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, diagnostics, got)
}
