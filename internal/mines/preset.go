package mines

import "fmt"

type Preset struct {
	Name       string `json:"name" yaml:"name"`
	GameParams `yaml:",inline"`
}

type Presets []Preset

var DefaultPresets = Presets{
	{Name: "easy", GameParams: GameParams{Rows: 9, Cols: 9, MineCount: 10}},
	{Name: "medium", GameParams: GameParams{Rows: 16, Cols: 16, MineCount: 40}},
	{Name: "hard", GameParams: GameParams{Rows: 16, Cols: 30, MineCount: 99}},
}

func (ps Presets) Lookup(name string) (Preset, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

func (ps Presets) Validate() error {
	if len(ps) == 0 {
		return fmt.Errorf("no presets defined")
	}
	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			return fmt.Errorf("preset %s has no name", p.GameParams)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.GameParams.Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return nil
}
