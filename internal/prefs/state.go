package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"FishSentinel/internal/model"
)

// LoadState reads preferences from a JSON file. Returns empty preferences if
// the file doesn't exist.
func LoadState(filePath string) (*model.Prefs, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.Prefs{}, nil
		}
		return nil, err
	}
	var state model.Prefs
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes preferences to a JSON file, creating its directory.
func SaveState(filePath string, state *model.Prefs) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
