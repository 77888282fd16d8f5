package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// HistoryVersion is written into every score history file.
const HistoryVersion = "1.0"

// EpisodeRecord is the outcome of one training episode
type EpisodeRecord struct {
	Episode int `json:"episode"`
	Score   int `json:"score"`
	Steps   int `json:"steps"`
}

// History is the per-episode score log of a training run. It records what
// the agent scored, not the trained weights.
type History struct {
	Version  string          `json:"version"`
	Config   *Config         `json:"config,omitempty"`
	Episodes []EpisodeRecord `json:"episodes"`
}

// NewHistory starts an empty history for a run using cfg.
func NewHistory(cfg *Config) *History {
	return &History{Version: HistoryVersion, Config: cfg}
}

func (h *History) Add(r EpisodeRecord) {
	h.Episodes = append(h.Episodes, r)
}

// SaveHistory saves a score history to a JSON file
func SaveHistory(filepath string, h *History) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadHistory loads a score history from a JSON file
func LoadHistory(filepath string) (*History, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return &h, nil
}
