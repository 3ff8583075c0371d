package webgain

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webgain.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "editor:\n  width: 1200\n  height: 800\nmidi:\n  channel: 3\n  controller: 7\n"))
	if err != nil {
		t.Fatal(err)
	}

	def := DefaultConfig()
	if cfg.SampleRate != def.SampleRate || cfg.BlockSize != def.BlockSize {
		t.Errorf("audio settings %v/%d, want defaults", cfg.SampleRate, cfg.BlockSize)
	}
	if cfg.SmoothingMs != DefaultSmoothingMs || cfg.QueueCapacity != DefaultQueueCapacity {
		t.Errorf("smoothing %v queue %d, want defaults", cfg.SmoothingMs, cfg.QueueCapacity)
	}
	if cfg.Editor.Width != 1200 || cfg.Editor.Height != 800 {
		t.Errorf("editor = %+v, want 1200x800", cfg.Editor)
	}
	if cfg.Midi == nil || cfg.Midi.Channel != 3 || cfg.Midi.Controller != 7 {
		t.Errorf("midi = %+v, want channel 3 cc 7", cfg.Midi)
	}
}

func TestLoadConfigRejectsMidiChannel(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "midi:\n  channel: 16\n")); err == nil {
		t.Error("expected error for midi channel 16")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
