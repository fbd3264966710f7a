//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"genepool/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	_, _, err := store.GetRun(context.Background(), "run-1")
	require.Error(t, err)
}

func TestSQLiteStoreCheckpointLifecycle(t *testing.T) {
	store := newTestSQLiteStore(t)
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

	// Saving again under the same id replaces the row.
	checkpoint.Generation = 7
	require.NoError(t, store.SaveCheckpoint(ctx, checkpoint))
	got, _, err = store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.Equal(t, 7, got.Generation)

	require.NoError(t, store.DeleteCheckpoint(ctx, "cp-1"))
	_, found, err = store.GetCheckpoint(ctx, "cp-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSQLiteStoreRunsOrderedByCreation(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	versioned := model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
	for _, run := range []model.RunRecord{
		{VersionedRecord: versioned, ID: "b", CreatedAtUTC: "2026-08-30T10:00:00Z"},
		{VersionedRecord: versioned, ID: "a", CreatedAtUTC: "2026-08-29T08:00:00Z"},
	} {
		require.NoError(t, store.SaveRun(ctx, run))
	}

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "a", runs[0].ID)
	require.Equal(t, "b", runs[1].ID)
}

func TestSQLiteStoreHistoryAndDiagnostics(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFitnessHistory(ctx, "run-1", []float64{1, 2, 3}))
	history, found, err := store.GetFitnessHistory(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []float64{1, 2, 3}, history)

	diagnostics := []model.GenerationDiagnostics{{Generation: 0, BestFitness: 3, Evaluations: 8}}
	require.NoError(t, store.SaveDiagnostics(ctx, "run-1", diagnostics))
	got, found, err := store.GetDiagnostics(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, diagnostics, got)
}
