package ws

import (
	"encoding/json"
	"time"
)

// ModelTrainedEvent tells connected clients that a new model run is
// live and previously cached shortlists were invalidated.
type ModelTrainedEvent struct {
	Type           string    `json:"type"`
	RunID          string    `json:"run_id"`
	TrainingSize   int       `json:"training_size"`
	VocabularySize int       `json:"vocabulary_size"`
	Timestamp      time.Time `json:"timestamp"`
}

// NotifyModelTrained broadcasts a model_trained event through the hub.
func NotifyModelTrained(h *Hub, runID string, trainingSize, vocabularySize int) {
	if h == nil || runID == "" {
		return
	}

	evt := ModelTrainedEvent{
		Type:           "model_trained",
		RunID:          runID,
		TrainingSize:   trainingSize,
		VocabularySize: vocabularySize,
		Timestamp:      time.Now().UTC(),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
