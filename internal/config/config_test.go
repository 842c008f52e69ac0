package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadChunkSizeMissingFileUsesDefault(t *testing.T) {
	got, err := loadChunkSize(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load chunk size: %v", err)
	}
	if got != DefaultChunkSize {
		t.Fatalf("chunk size mismatch got=%d want=%d", got, DefaultChunkSize)
	}
}

func TestLoadChunkSizeFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"chunk_size":4096}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := loadChunkSize(cfgPath)
	if err != nil {
		t.Fatalf("load chunk size: %v", err)
	}
	if got != 4096 {
		t.Fatalf("chunk size mismatch got=%d want=%d", got, 4096)
	}
}

func TestLoadChunkSizeZeroMeansDefault(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := loadChunkSize(cfgPath)
	if err != nil {
		t.Fatalf("load chunk size: %v", err)
	}
	if got != DefaultChunkSize {
		t.Fatalf("chunk size mismatch got=%d want=%d", got, DefaultChunkSize)
	}
}

func TestLoadChunkSizeRejectsInvalidValues(t *testing.T) {
	tests := []string{
		`{"chunk_size":-1}`,
		`{"chunk_size":"abc"}`,
		`not json`,
	}

	for _, raw := range tests {
		cfgPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(cfgPath, []byte(raw), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := loadChunkSize(cfgPath); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}
