// Package config resolves the settings file and the I/O chunk size.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// DefaultChunkSize is the capacity of the shared wipe buffers when no
// override is configured: 1 MiB.
const DefaultChunkSize = 1 << 20

// Config contains resolved settings for a run.
type Config struct {
	AppDir       string
	SettingsPath string
	ChunkSize    int
}

// Resolve reads the settings file for the current user, falling back to
// defaults when it does not exist.
func Resolve() (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to resolve user config dir")
	}

	appDir := filepath.Join(configDir, "scour")
	settingsPath := filepath.Join(appDir, "config.json")
	chunkSize, err := loadChunkSize(settingsPath)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to load config file %q", settingsPath)
	}

	return Config{
		AppDir:       appDir,
		SettingsPath: settingsPath,
		ChunkSize:    chunkSize,
	}, nil
}

type fileConfig struct {
	ChunkSize int `json:"chunk_size"`
}

func loadChunkSize(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultChunkSize, nil
		}
		return 0, errors.Wrap(err, "failed to read config")
	}

	var cfg fileConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return 0, errors.Wrap(err, "failed to decode config json")
	}
	if cfg.ChunkSize == 0 {
		return DefaultChunkSize, nil
	}
	if cfg.ChunkSize < 0 {
		return 0, errors.Newf("invalid chunk_size %d: must be > 0", cfg.ChunkSize)
	}
	return cfg.ChunkSize, nil
}
