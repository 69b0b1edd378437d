package config

import (
	"fmt"
	"sort"
	"time"
)

var Presets = map[string]FieldConfig{
	"calm": {
		Tick: 150 * time.Millisecond, Grow: 5 * time.Minute, Trim: time.Minute,
		Highlight: 2 * time.Second, Spread: 5 * time.Minute,
		MaxBubbles: 50, BurstMin: 8, BurstMax: 15,
	},
	"busy": {
		Tick: 150 * time.Millisecond, Grow: 10 * time.Second, Trim: 30 * time.Second,
		Highlight: 2 * time.Second, Spread: 5 * time.Minute,
		MaxBubbles: 50, BurstMin: 20, BurstMax: 30,
	},
	"demo": {
		Tick: 100 * time.Millisecond, Grow: 3 * time.Second, Trim: 15 * time.Second,
		Highlight: 2 * time.Second, Spread: time.Minute,
		MaxBubbles: 25, BurstMin: 2, BurstMax: 4,
	},
}

func GetPreset(name string) (FieldConfig, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the field settings with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Field = p
	c.Preset = name
	return nil
}
