package position

import (
	"encoding/json"
	"os"
	"path/filepath"

	"DipSnap/internal/model"
)

// LoadState reads the persisted open position. Returns nil (no position)
// when the file doesn't exist.
func LoadState(filePath string) (*model.Position, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var pos model.Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, err
	}
	if pos.Symbol == "" {
		return nil, nil
	}
	return &pos, nil
}

// SaveState writes the open position to disk, or removes the file when
// there is no position.
func SaveState(filePath string, pos *model.Position) error {
	if pos == nil {
		err := os.Remove(filePath)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
