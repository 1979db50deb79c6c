package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings every command needs.
type Config struct {
	// DataDir is the directory holding the three JSON documents.
	DataDir string `yaml:"data_dir" env:"INSCRITO_DATA_DIR"`

	// JournalFile is the SQLite audit journal path. Empty disables the
	// journal entirely.
	JournalFile string `yaml:"journal_file" env:"INSCRITO_JOURNAL"`
}

// Default returns the built-in configuration: documents under ./data and
// the journal alongside them.
func Default() Config {
	return Config{
		DataDir:     "data",
		JournalFile: filepath.Join("data", "journal.db"),
	}
}

// Load resolves the configuration. The YAML file at path is optional; a
// missing file is not an error, a malformed one is. Environment variables
// override both defaults and file values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data directory must not be empty")
	}
	return cfg, nil
}
