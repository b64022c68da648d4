package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "SPECIESDIFF_"

// ApplyEnvConfig applies configuration from environment variables (SPECIESDIFF_*).
// It respects flags that have been explicitly set (changed map).
// SPECIESDIFF_REPORTS is a comma separated list.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("input-a", os.Getenv(EnvPrefix+"INPUT_A"), &cfg.InputA)
	s.setString("input-b", os.Getenv(EnvPrefix+"INPUT_B"), &cfg.InputB)
	s.setString("label-a", os.Getenv(EnvPrefix+"LABEL_A"), &cfg.LabelA)
	s.setString("label-b", os.Getenv(EnvPrefix+"LABEL_B"), &cfg.LabelB)
	s.setString("input-format", os.Getenv(EnvPrefix+"INPUT_FORMAT"), &cfg.InputFormat)
	s.setString("output-dir", os.Getenv(EnvPrefix+"OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("lang", os.Getenv(EnvPrefix+"LANG"), &cfg.Language)
	s.setString("assets-host", os.Getenv(EnvPrefix+"ASSETS_HOST"), &cfg.AssetsHost)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setList("reports", os.Getenv(EnvPrefix+"REPORTS"), &cfg.Reports)

	return s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE"), &cfg.Debounce)
}
