package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// PopulationCheckpoint is a durable, index-ordered snapshot of every
// member's gene vector taken at a generation boundary.
type PopulationCheckpoint struct {
	VersionedRecord
	ID         string      `json:"id"`
	Provider   string      `json:"provider"`
	Generation int         `json:"generation"`
	Genes      [][]float64 `json:"genes"`
}

type RunRecord struct {
	VersionedRecord
	ID           string  `json:"id"`
	CreatedAtUTC string  `json:"created_at_utc"`
	Provider     string  `json:"provider"`
	Seed         int64   `json:"seed"`
	Population   int     `json:"population"`
	Generations  int     `json:"generations"`
	BestFitness  float64 `json:"best_fitness"`
}

type GenerationDiagnostics struct {
	Generation    int     `json:"generation"`
	BestFitness   float64 `json:"best_fitness"`
	MeanFitness   float64 `json:"mean_fitness"`
	MinFitness    float64 `json:"min_fitness"`
	StdDevFitness float64 `json:"stddev_fitness"`
	Evaluations   int     `json:"evaluations"`
}
