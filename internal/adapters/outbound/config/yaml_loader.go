package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unityconverters/samplereport/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the project root.
const FileName = ".samplereport.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .samplereport.yaml.
type YAMLLoader struct {
	path string
}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader that reads FileName from the project root.
func New() *YAMLLoader { return &YAMLLoader{} }

// NewWithPath creates a YAMLLoader that reads an explicit config file instead.
func NewWithPath(path string) *YAMLLoader { return &YAMLLoader{path: path} }

// Load reads the project config. A missing file yields DefaultConfig; an
// explicitly given path must exist.
func (l *YAMLLoader) Load(projectRoot string) (domain.ProjectConfig, error) {
	path := l.path
	if path == "" {
		path = filepath.Join(projectRoot, FileName)
	}
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && l.path == "" {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate before filling defaults so typos in the raw input surface.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg.WithDefaults(), nil
}

// Marshal renders a project config as YAML.
func Marshal(cfg domain.ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// LoadConverters reads a converters config file. Keys absent from the file
// keep their defaults; a missing file yields DefaultConvertersConfig.
func LoadConverters(path string) (domain.ConvertersConfig, error) {
	cfg := domain.DefaultConvertersConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.ConvertersConfig{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ConvertersConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.ConvertersConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return cfg, nil
}

// MarshalConverters renders a converters config as YAML.
func MarshalConverters(cfg domain.ConvertersConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
