// Package config holds the calculator settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// MinPrecision is the smallest fixed precision accepted by Validate.
const MinPrecision = 4

// Config drives both the stdio and the websocket sessions.
type Config struct {
	Prompt         string `yaml:"prompt"`
	Banner         string `yaml:"banner"`
	QuitMarker     string `yaml:"quit_marker"`
	Precision      int    `yaml:"precision"`        // Digits after the point, -1 for shortest, else at least MinPrecision.
	SkipBlankLines bool   `yaml:"skip_blank_lines"` // Print nothing for blank lines instead of a diagnostic.
	LogLevel       string `yaml:"log_level"`
	ListenAddr     string `yaml:"listen_addr"`
}

// Default returns the settings matching the wire format callers expect.
func Default() Config {
	return Config{
		Prompt:     "> ",
		Banner:     "Enter expressions or 'q' to exit:",
		QuitMarker: "q",
		Precision:  -1,
		LogLevel:   "info",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that can't produce a usable session.
func (c Config) Validate() error {
	var errs []error
	if c.QuitMarker == "" {
		errs = append(errs, errors.New("quit_marker must not be empty"))
	}
	// Fewer than MinPrecision digits can't round-trip a result within 1e-4.
	if c.Precision != -1 && c.Precision < MinPrecision {
		errs = append(errs, fmt.Errorf("precision must be -1 or >= %d, got %d", MinPrecision, c.Precision))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
