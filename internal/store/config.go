package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFile      = "config.yaml"
	DefaultName     = "Lebron"
	DefaultDataFile = "lebron.txt"
)

type Config struct {
	Name      string `yaml:"name" json:"name"`
	DataFile  string `yaml:"data_file" json:"data_file"`
	ExportDir string `yaml:"export_dir,omitempty" json:"export_dir,omitempty"`
}

func DefaultConfig() Config {
	return Config{Name: DefaultName, DataFile: DefaultDataFile}
}

// LoadConfig reads <root>/config.yaml. A missing file yields defaults.
func LoadConfig(root string) (Config, bool, error) {
	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), false, nil
		}
		return DefaultConfig(), false, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return DefaultConfig(), true, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.withDefaults(), true, nil
}

func SaveConfig(root string, cfg Config) error {
	b, err := yaml.Marshal(cfg.withDefaults())
	if err != nil {
		return err
	}
	return atomicWriteFile(filepath.Join(root, ConfigFile), b, 0o644)
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = DefaultName
	}
	if strings.TrimSpace(c.DataFile) == "" {
		c.DataFile = DefaultDataFile
	}
	return c
}

// DataPath resolves the save file against root unless it is absolute.
func (c Config) DataPath(root string) string {
	p := ExpandHome(strings.TrimSpace(c.DataFile))
	if p == "" {
		p = DefaultDataFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func (c Config) ExportPath(root string) string {
	p := ExpandHome(strings.TrimSpace(c.ExportDir))
	if p == "" {
		return filepath.Join(root, "exports")
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
