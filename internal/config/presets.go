package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/xglobaltents/3D-App/internal/engine/instance"
)

// SavedConfiguration is a named tent configuration: the variant, bay count
// and the computed per-part transforms, all plain numbers so the file round
// trips without live object references.
type SavedConfiguration struct {
	Name    string                          `yaml:"name"`
	Variant string                          `yaml:"variant"`
	NumBays int                             `yaml:"num_bays"`
	Parts   map[string][]instance.Transform `yaml:"parts"`
}

// SaveConfiguration writes a named configuration under the user config
// directory.
func SaveConfiguration(sc *SavedConfiguration) error {
	if sc.Name == "" {
		return fmt.Errorf("configuration name must not be empty")
	}

	dir := filepath.Join(ConfigDir(), "configurations")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, sc.Name+".yaml"), data, 0644)
}

// LoadConfiguration reads a named configuration back.
func LoadConfiguration(name string) (*SavedConfiguration, error) {
	path := filepath.Join(ConfigDir(), "configurations", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading configuration %q: %w", name, err)
	}

	var sc SavedConfiguration
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing configuration %q: %w", name, err)
	}
	return &sc, nil
}

// ListConfigurations returns the saved configuration names.
func ListConfigurations() ([]string, error) {
	dir := filepath.Join(ConfigDir(), "configurations")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" {
			names = append(names, e.Name()[:len(e.Name())-len(ext)])
		}
	}
	return names, nil
}
