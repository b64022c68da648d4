package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/speciesdiff/internal/adapters/fs"
	"github.com/bft-labs/speciesdiff/internal/adapters/report"
	"github.com/bft-labs/speciesdiff/internal/app"
	"github.com/bft-labs/speciesdiff/internal/domain"
)

// Default dataset locations and labels.
const (
	DefaultInputA = "plantclef2015.json"
	DefaultInputB = "plantnet300k.json"
	DefaultLabelA = "PlantCLEF2015"
	DefaultLabelB = "PlantNet300K"
)

// Config holds CLI configuration for speciesdiff.
type Config struct {
	InputA string
	InputB string
	LabelA string
	LabelB string

	InputFormat string
	OutputDir   string
	Language    string
	AssetsHost  string
	LogLevel    string

	Reports  []string
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		InputA:      DefaultInputA,
		InputB:      DefaultInputB,
		LabelA:      DefaultLabelA,
		LabelB:      DefaultLabelB,
		InputFormat: string(fs.FormatAuto),
		OutputDir:   ".",
		Language:    string(report.LangZH),
		LogLevel:    "info",
		Reports:     append([]string(nil), report.AllKinds...),
		Debounce:    app.DefaultDebounce,
	}
}

// Validate checks the configuration for errors and normalizes values.
// Every failure is an invalid_config error.
func (c *Config) Validate() error {
	const op = "config.validate"

	c.InputA = strings.TrimSpace(c.InputA)
	c.InputB = strings.TrimSpace(c.InputB)
	if c.InputA == "" || c.InputB == "" {
		return domain.InvalidConfig(op, fmt.Errorf("input-a and input-b are required"))
	}

	c.LabelA = strings.TrimSpace(c.LabelA)
	c.LabelB = strings.TrimSpace(c.LabelB)
	if c.LabelA == "" || c.LabelB == "" {
		return domain.InvalidConfig(op, fmt.Errorf("label-a and label-b must not be empty"))
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	format, err := fs.ParseFormat(c.InputFormat)
	if err != nil {
		return domain.InvalidConfig(op, err)
	}
	c.InputFormat = string(format)

	lang, err := report.ParseLanguage(c.Language)
	if err != nil {
		return domain.InvalidConfig(op, err)
	}
	c.Language = string(lang)

	// Labels name workbook sheets, which must stay distinct after sanitizing.
	if err := report.CheckSheetNames(report.WorkbookSheetNames(lang, c.LabelA, c.LabelB)); err != nil {
		return domain.InvalidConfig(op, fmt.Errorf("label-a %q and label-b %q: %w", c.LabelA, c.LabelB, err))
	}

	if len(c.Reports) == 0 {
		return domain.InvalidConfig(op, fmt.Errorf("at least one report is required"))
	}
	seen := make(map[string]bool, len(c.Reports))
	reports := make([]string, 0, len(c.Reports))
	for _, r := range c.Reports {
		r = strings.ToLower(strings.TrimSpace(r))
		if !isKnownReport(r) {
			return domain.InvalidConfig(op, fmt.Errorf("unknown report %q (want one of %v)", r, report.AllKinds))
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		reports = append(reports, r)
	}
	c.Reports = reports

	if c.Debounce <= 0 {
		return domain.InvalidConfig(op, fmt.Errorf("debounce must be positive"))
	}

	return nil
}

// ReportOptions returns the reporter options for this configuration.
func (c Config) ReportOptions() report.Options {
	opts := report.DefaultOptions()
	opts.OutputDir = c.OutputDir
	opts.Language = report.Language(c.Language)
	opts.AssetsHost = c.AssetsHost
	return opts
}

// AnalysisConfig returns the dataset part of this configuration.
func (c Config) AnalysisConfig() app.AnalysisConfig {
	return app.AnalysisConfig{
		InputA: c.InputA,
		InputB: c.InputB,
		LabelA: c.LabelA,
		LabelB: c.LabelB,
	}
}

func isKnownReport(name string) bool {
	for _, k := range report.AllKinds {
		if k == name {
			return true
		}
	}
	return false
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setList splits a comma separated value, as used by environment variables.
func (s *configSetter) setList(flag, value string, dst *[]string) {
	if strings.TrimSpace(value) == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return domain.InvalidConfig("config.parse", fmt.Errorf("parse %s: %w", flag, err))
	}
	*dst = d
	return nil
}
