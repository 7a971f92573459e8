// Package config loads the settings of the standalone pocket command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pocketaudio/pocket/monitor"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Monitor Monitor `yaml:"monitor"`
		Host    Host    `yaml:"host"`
		Replay  Replay  `yaml:"replay"`
	}

	Monitor struct {
		RefreshRate float64 `yaml:"refreshrate"` // Hz
		Threshold   float64 `yaml:"threshold"`   // ms
	}

	Host struct {
		SampleRate    int     `yaml:"samplerate"`
		BlockSize     int     `yaml:"blocksize"`
		BPM           float64 `yaml:"bpm"`
		MetronomeGain float64 `yaml:"metronomegain"`
		MIDIInput     string  `yaml:"midiinput"` // name prefix; empty opens the first input
	}

	Replay struct {
		SampleRate int    `yaml:"samplerate"`
		BlockSize  int    `yaml:"blocksize"`
		Template   string `yaml:"template"` // path; empty uses the built-in template
	}
)

func Default() Config {
	return Config{
		Monitor: Monitor{RefreshRate: monitor.DefaultRefreshRate, Threshold: monitor.DefaultThreshold},
		Host:    Host{SampleRate: 44100, BlockSize: 512, BPM: 120, MetronomeGain: 0.3},
		Replay:  Replay{SampleRate: 44100, BlockSize: 512},
	}
}

// Path is the default location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user config directory: %w", err)
	}
	return filepath.Join(dir, "Pocket", "config.yml"), nil
}

// Load reads the config at path over the defaults. An empty path means the
// default location. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return cfg, nil
		}
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("could not read config: %w", err)
	}
	if err := Parse(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%v: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes b over cfg and validates the result.
func Parse(b []byte, cfg *Config) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("could not parse config: %w", err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("monitor.refreshrate", c.Monitor.RefreshRate)
	positive("host.samplerate", float64(c.Host.SampleRate))
	positive("host.blocksize", float64(c.Host.BlockSize))
	positive("host.bpm", c.Host.BPM)
	positive("replay.samplerate", float64(c.Replay.SampleRate))
	positive("replay.blocksize", float64(c.Replay.BlockSize))
	if c.Monitor.Threshold < 0 {
		errs = append(errs, fmt.Errorf("monitor.threshold must not be negative, got %v", c.Monitor.Threshold))
	}
	if c.Host.MetronomeGain < 0 {
		errs = append(errs, fmt.Errorf("host.metronomegain must not be negative, got %v", c.Host.MetronomeGain))
	}
	return errors.Join(errs...)
}

// Save writes the config to path, creating its directory.
func (c Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}
