package webgain

import (
	"os"
	"path/filepath"

	"github.com/michaelquigley/df/dd"
	"github.com/pkg/errors"
)

type Config struct {
	SampleRate    float32
	BlockSize     int
	SmoothingMs   float32
	QueueCapacity int
	TickHz        int
	Editor        EditorConfig
	Midi          *MidiConfig
	Tone          ToneConfig
}

type EditorConfig struct {
	Width  uint32
	Height uint32
}

type MidiConfig struct {
	Input      string // port name prefix; empty takes the first port
	Channel    uint8  // 0-15
	Controller uint8
}

type ToneConfig struct {
	Frequency float64
	Amplitude float64
}

func DefaultConfig() *Config {
	return &Config{
		SampleRate:    48000,
		BlockSize:     512,
		SmoothingMs:   DefaultSmoothingMs,
		QueueCapacity: DefaultQueueCapacity,
		TickHz:        60,
		Editor: EditorConfig{
			Width:  DefaultEditorWidth,
			Height: DefaultEditorHeight,
		},
		Tone: ToneConfig{
			Frequency: 440,
			Amplitude: 0.25,
		},
	}
}

func MainConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "webgain", "webgain.yaml"), nil
}

// LoadMainConfig loads the per-user config, falling back to defaults when it does not exist
func LoadMainConfig() (*Config, error) {
	configPath, err := MainConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

func LoadConfig(path string) (*Config, error) {
	cfg, err := dd.NewFromYAML[Config](path)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading config '%s'", path)
	}
	cfg.applyDefaults()
	if cfg.Midi != nil && cfg.Midi.Channel > 15 {
		return nil, errors.Errorf("midi channel '%d' out of range (0-15)", cfg.Midi.Channel)
	}
	return cfg, nil
}

// applyDefaults fills zero values from DefaultConfig
func (cfg *Config) applyDefaults() {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = def.BlockSize
	}
	if cfg.SmoothingMs <= 0 {
		cfg.SmoothingMs = def.SmoothingMs
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = def.QueueCapacity
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = def.TickHz
	}
	if cfg.Editor.Width == 0 || cfg.Editor.Height == 0 {
		cfg.Editor = def.Editor
	}
	if cfg.Tone.Frequency <= 0 {
		cfg.Tone.Frequency = def.Tone.Frequency
	}
	if cfg.Tone.Amplitude <= 0 {
		cfg.Tone.Amplitude = def.Tone.Amplitude
	}
}
