package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

// ExportData is the JSON document written for a headless run.
type ExportData struct {
	Seed     int64           `json:"seed"`
	Preset   string          `json:"preset,omitempty"`
	Duration string          `json:"duration"`
	Ticks    int             `json:"ticks"`
	Grown    int             `json:"grown"`
	Dropped  int             `json:"dropped"`
	Samples  []field.Sample  `json:"samples"`
	Final    []bubble.Bubble `json:"final"`
}

func newExportData(seed int64, preset string, result *field.Result) ExportData {
	return ExportData{
		Seed:     seed,
		Preset:   preset,
		Duration: result.Duration.String(),
		Ticks:    result.Ticks,
		Grown:    result.Grown,
		Dropped:  result.Dropped,
		Samples:  result.Samples,
		Final:    result.Final,
	}
}

func ExportJSON(path string, seed int64, preset string, result *field.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, seed, preset, result)
}

func WriteJSON(w io.Writer, seed int64, preset string, result *field.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(seed, preset, result))
}
