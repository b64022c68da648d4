package cliconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// DefaultConfigPath is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigPath = "speciesdiff.toml"

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	InputA      string   `toml:"input_a"`
	InputB      string   `toml:"input_b"`
	LabelA      string   `toml:"label_a"`
	LabelB      string   `toml:"label_b"`
	InputFormat string   `toml:"input_format"`
	OutputDir   string   `toml:"output_dir"`
	Language    string   `toml:"lang"`
	AssetsHost  string   `toml:"assets_host"`
	LogLevel    string   `toml:"log_level"`
	Reports     []string `toml:"reports"`
	Debounce    string   `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
// Unknown keys are rejected so typos do not pass silently.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, domain.NotFound("config.load", path, err)
		}
		return fc, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fc, &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: errors.New(strict.String())}
		}
		return fc, &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-a", fc.InputA, &cfg.InputA)
	s.setString("input-b", fc.InputB, &cfg.InputB)
	s.setString("label-a", fc.LabelA, &cfg.LabelA)
	s.setString("label-b", fc.LabelB, &cfg.LabelB)
	s.setString("input-format", fc.InputFormat, &cfg.InputFormat)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("lang", fc.Language, &cfg.Language)
	s.setString("assets-host", fc.AssetsHost, &cfg.AssetsHost)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setStrings("reports", fc.Reports, &cfg.Reports)

	return s.setDuration("debounce", fc.Debounce, &cfg.Debounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
