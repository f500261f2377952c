package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds launcher defaults loaded from an optional config file.
// Zero values mean "unspecified"; the CLI layer applies its own defaults and
// passes explicit parameters into the resolution core, which never reads
// configuration itself.
type Config struct {
	// ModelsDir is scanned for *.gguf artifacts and receives downloads.
	ModelsDir string `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	// DownloadTimeout bounds a model download, as a Go duration string.
	DownloadTimeout string `json:"download_timeout" yaml:"download_timeout" toml:"download_timeout"`
	// CatalogHint replaces the browse-elsewhere entry in the model chooser.
	CatalogHint string `json:"catalog_hint" yaml:"catalog_hint" toml:"catalog_hint"`
	// DefaultTemplate is a canonical template id used when --prompt-template
	// is absent, skipping the interactive prompt.
	DefaultTemplate string `json:"default_template" yaml:"default_template" toml:"default_template"`
	// LogLevel: debug|info|warn|error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
