// Package model defines the persistent record shapes shared by the storage
// backends and the CLI.
package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// QTableRecord is a learned Q-table keyed by its owning agent.
type QTableRecord struct {
	VersionedRecord
	ID     string                        `json:"id"`
	States map[string]map[string]float64 `json:"states"`
}

// RunRecord is the outcome of one simulation run.
type RunRecord struct {
	VersionedRecord
	ID          string          `json:"id"`
	Scenario    string          `json:"scenario"`
	Environment string          `json:"environment"`
	Episodes    []EpisodeRecord `json:"episodes"`
}

// EpisodeRecord is one episode's metrics inside a run.
type EpisodeRecord struct {
	Episode    int                `json:"episode"`
	Steps      int                `json:"steps"`
	Rewards    map[string]float64 `json:"rewards"`
	Terminated bool               `json:"terminated"`
}

// GenotypeRecord is a direction-sequence genotype with its final scores.
type GenotypeRecord struct {
	VersionedRecord
	ID        string   `json:"id"`
	Genes     []string `json:"genes"`
	Objective float64  `json:"objective"`
	Novelty   float64  `json:"novelty"`
	Combined  float64  `json:"combined"`
}

// EvolutionRecord is the outcome of one novelty-search run.
type EvolutionRecord struct {
	VersionedRecord
	ID          string              `json:"id"`
	Environment string              `json:"environment"`
	BestID      string              `json:"best_id"`
	Generations []GenerationMetrics `json:"generations"`
}

// GenerationMetrics is one generation's summary inside an evolution run.
type GenerationMetrics struct {
	Generation    int     `json:"generation"`
	MeanCombined  float64 `json:"mean_combined"`
	MaxCombined   float64 `json:"max_combined"`
	MeanNovelty   float64 `json:"mean_novelty"`
	MeanObjective float64 `json:"mean_objective"`
	Diversity     float64 `json:"diversity"`
	ArchiveSize   int     `json:"archive_size"`
}
