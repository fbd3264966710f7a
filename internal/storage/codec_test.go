package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"genepool/internal/model"
)

func TestCheckpointCodecRoundTrip(t *testing.T) {
	checkpoint := testCheckpoint("cp-codec")

	data, err := EncodeCheckpoint(checkpoint)
	require.NoError(t, err)

	decoded, err := DecodeCheckpoint(data)
	require.NoError(t, err)
	require.Equal(t, checkpoint, decoded)
}

func TestDecodeCheckpointRejectsVersionMismatch(t *testing.T) {
	checkpoint := testCheckpoint("cp-old")
	checkpoint.SchemaVersion = CurrentSchemaVersion + 1

	data, err := EncodeCheckpoint(checkpoint)
	require.NoError(t, err)

	_, err = DecodeCheckpoint(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestRunCodecRoundTrip(t *testing.T) {
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion,
		},
		ID:           "run-codec",
		CreatedAtUTC: "2026-08-31T09:00:00Z",
		Provider:     "rastrigin",
		Seed:         42,
		Population:   64,
		Generations:  12,
		BestFitness:  -1.5,
	}

	data, err := EncodeRun(run)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	require.Equal(t, run, decoded)
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: CurrentSchemaVersion,
			CodecVersion:  CurrentCodecVersion + 1,
		},
		ID: "run-old",
	}

	data, err := EncodeRun(run)
	require.NoError(t, err)

	_, err = DecodeRun(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestDecodeCheckpointRejectsMalformedPayload(t *testing.T) {
	_, err := DecodeCheckpoint([]byte("{broken"))
	require.Error(t, err)
}

func TestFitnessHistoryCodecRoundTrip(t *testing.T) {
	history := []float64{-3, -1.5, 0.25}

	data, err := EncodeFitnessHistory(history)
	require.NoError(t, err)

	decoded, err := DecodeFitnessHistory(data)
	require.NoError(t, err)
	require.Equal(t, history, decoded)
}

func TestDiagnosticsCodecRoundTrip(t *testing.T) {
	diagnostics := []model.GenerationDiagnostics{
		{Generation: 0, BestFitness: 1, MeanFitness: 0.5, MinFitness: 0.1, StdDevFitness: 0.2, Evaluations: 32},
	}

	data, err := EncodeDiagnostics(diagnostics)
	require.NoError(t, err)

	decoded, err := DecodeDiagnostics(data)
	require.NoError(t, err)
	require.Equal(t, diagnostics, decoded)
}
