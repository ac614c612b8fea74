package dto

import "time"

type ModelMetricsResponse struct {
	VocabularySize int     `json:"vocabulary_size"`
	MatrixRows     int     `json:"matrix_rows"`
	MatrixCols     int     `json:"matrix_cols"`
	Sparsity       float64 `json:"sparsity"`
	TrainingMillis int64   `json:"training_millis"`
}

type ModelStatusResponse struct {
	Ready               bool                 `json:"ready"`
	Version             string               `json:"version"`
	RunID               string               `json:"run_id,omitempty"`
	TrainingSize        int                  `json:"training_size"`
	TrainedAt           *time.Time           `json:"trained_at,omitempty"`
	Metrics             ModelMetricsResponse `json:"metrics"`
	SimilarityCacheSize int                  `json:"similarity_cache_size"`
	ArtifactExists      bool                 `json:"artifact_exists"`
}

type TrainResponse struct {
	Retrained bool                 `json:"retrained"`
	Status    ModelStatusResponse  `json:"status"`
	Metrics   ModelMetricsResponse `json:"metrics"`
}
