package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"imgs2pdf/internal/models"
)

// LoadFile reads a YAML settings file on top of cfg. Keys missing from the
// file leave the current values alone; unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: config file not found: %s", models.ErrConfig, path)
		}
		return fmt.Errorf("%w: failed to access config file: %w", models.ErrConfig, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", models.ErrConfig, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to read config file: %w", models.ErrConfig, err)
	}
	return Load(data, cfg)
}

// Load decodes YAML settings onto cfg
func Load(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid config file: %w", models.ErrConfig, err)
	}
	return nil
}
