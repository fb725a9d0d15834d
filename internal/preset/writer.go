package preset

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WritePreset writes a preset to a YAML file
func WritePreset(p *Preset, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadPreset reads a preset from a YAML file
func ReadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	return &p, nil
}
