package cliconfig

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"SPECIESDIFF_INPUT_A":      "/env/a.json",
				"SPECIESDIFF_INPUT_B":      "/env/b.yaml",
				"SPECIESDIFF_LABEL_A":      "Flora",
				"SPECIESDIFF_LABEL_B":      "Fauna",
				"SPECIESDIFF_INPUT_FORMAT": "yaml",
				"SPECIESDIFF_OUTPUT_DIR":   "/env/out",
				"SPECIESDIFF_LANG":         "en",
				"SPECIESDIFF_ASSETS_HOST":  "http://assets/",
				"SPECIESDIFF_LOG_LEVEL":    "debug",
				"SPECIESDIFF_REPORTS":      "summary, chart",
				"SPECIESDIFF_DEBOUNCE":     "1s",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				InputA:      "/env/a.json",
				InputB:      "/env/b.yaml",
				LabelA:      "Flora",
				LabelB:      "Fauna",
				InputFormat: "yaml",
				OutputDir:   "/env/out",
				Language:    "en",
				AssetsHost:  "http://assets/",
				LogLevel:    "debug",
				Reports:     []string{"summary", "chart"},
				Debounce:    time.Second,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"SPECIESDIFF_INPUT_A": "/env/a.json",
				"SPECIESDIFF_LABEL_A": "Flora",
				"SPECIESDIFF_REPORTS": "chart",
			},
			changed: map[string]bool{"input-a": true, "reports": true},
			initial: Config{
				InputA:  "/flag/a.json",
				Reports: []string{"summary"},
			},
			expected: Config{
				InputA:  "/flag/a.json",
				LabelA:  "Flora",
				Reports: []string{"summary"},
			},
		},
		{
			name: "empty values keep current config",
			envVars: map[string]string{
				"SPECIESDIFF_LANG":    "",
				"SPECIESDIFF_REPORTS": " , ",
			},
			changed: map[string]bool{},
			initial: Config{Language: "zh", Reports: []string{"lists"}},
			expected: Config{
				Language: "zh",
				Reports:  []string{"lists"},
			},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"SPECIESDIFF_DEBOUNCE": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(cfg, tt.expected) {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
