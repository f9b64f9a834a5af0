package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper/internal/mines"
)

type presetsFile struct {
	Presets mines.Presets `yaml:"presets"`
}

// LoadPresetsFile reads a YAML file of the form
//
//	presets:
//	  - name: easy
//	    rows: 9
//	    cols: 9
//	    mines: 10
func LoadPresetsFile(path string) (mines.Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read presets file: %w", err)
	}
	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unable to parse presets file %s: %w", path, err)
	}
	if err := f.Presets.Validate(); err != nil {
		return nil, fmt.Errorf("invalid presets file %s: %w", path, err)
	}
	return f.Presets, nil
}

// Presets returns the presets from PRESETS_FILE, or the built-in ones when
// it is not set.
func Presets() (mines.Presets, error) {
	path, ok := os.LookupEnv("PRESETS_FILE")
	if !ok || path == "" {
		return mines.DefaultPresets, nil
	}
	return LoadPresetsFile(path)
}
