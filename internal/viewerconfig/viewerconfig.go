package viewerconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ViewerConfigPath is the path to the viewer prefs file, relative to the
// process working directory.
const ViewerConfigPath = "config/viewer.json"

// Prefs holds viewer-only preferences (grid, last part type, overlays).
// Persisted across runs; geometry itself is never serialized.
type Prefs struct {
	GridVisible bool   `json:"grid_visible"`
	ShowStats   bool   `json:"show_stats"`
	PartType    string `json:"part_type,omitempty"`
	IsHollow    bool   `json:"is_hollow,omitempty"`
}

// Default returns default viewer preferences (grid on, overlays off).
func Default() Prefs {
	return Prefs{
		GridVisible: true,
		ShowStats:   false,
		PartType:    "turbine_disk",
	}
}

// Load reads viewer preferences from config/viewer.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (Prefs, error) {
	data, err := os.ReadFile(ViewerConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes viewer preferences to config/viewer.json, creating the config
// directory if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(ViewerConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(ViewerConfigPath, data, 0644)
}
