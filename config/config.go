package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ChannelConfig is the persisted parameter set of one channel.
type ChannelConfig struct {
	Beginning      int `json:"beginning"`
	Delay          int `json:"delay"`
	Duration       int `json:"duration"`
	Divisions      int `json:"divisions"`
	Repetitions    int `json:"repetitions"`
	Probability    int `json:"probability"`
	DivProbability int `json:"divisionProbability"`
}

// MixConfig is one derived output's persisted wiring.
type MixConfig struct {
	Op string `json:"op"`
	A  string `json:"a"`
	B  string `json:"b"`
}

// MIDIConfig selects the MIDI bridge ports and note mapping.
type MIDIConfig struct {
	InPort   string   `json:"inPort,omitempty"`
	OutPort  string   `json:"outPort,omitempty"`
	InNotes  [2]uint8 `json:"inNotes,omitempty"`
	OutNotes [6]uint8 `json:"outNotes,omitempty"`
	Channel  uint8    `json:"channel,omitempty"`
}

// SerialConfig selects the hardware serial bridge.
type SerialConfig struct {
	Device    string  `json:"device,omitempty"`
	Baud      int     `json:"baud,omitempty"`
	Threshold float64 `json:"threshold,omitempty"` // analog comparator level, 0-1
}

// Config is the whole durable surface: fourteen parameter values, the four
// mix wirings, and bridge preferences.
type Config struct {
	Channels [2]ChannelConfig `json:"channels"`
	Mixes    [4]MixConfig     `json:"mixes"`
	MIDI     MIDIConfig       `json:"midi,omitempty"`
	Serial   SerialConfig     `json:"serial,omitempty"`
}

// DefaultConfig returns a config with every parameter at its default and the
// classic mix wiring.
func DefaultConfig() *Config {
	ch := ChannelConfig{
		Duration:       100,
		Divisions:      1,
		Probability:    100,
		DivProbability: 100,
	}
	return &Config{
		Channels: [2]ChannelConfig{ch, ch},
		Mixes: [4]MixConfig{
			{Op: "or", A: "outA", B: "inA"},
			{Op: "or", A: "outA", B: "outB"},
			{Op: "or", A: "outB", B: "inB"},
			{Op: "xor", A: "outA", B: "outB"},
		},
		MIDI: MIDIConfig{
			InNotes:  [2]uint8{60, 62},
			OutNotes: [6]uint8{36, 37, 38, 39, 40, 41},
			Channel:  1,
		},
		Serial: SerialConfig{
			Baud:      115200,
			Threshold: 0.3,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-burst"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
