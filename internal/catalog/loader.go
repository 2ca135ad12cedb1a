package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// LoadFile reads a JSON catalog file: either a bare array of places or
// an object with a "pois" field
func LoadFile(path string) ([]models.Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var places []models.Place
	if err := json.Unmarshal(data, &places); err == nil {
		return places, nil
	}

	var wrapped struct {
		POIs []models.Place `json:"pois"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return wrapped.POIs, nil
}
