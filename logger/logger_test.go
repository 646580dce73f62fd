package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("calabi")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Service() != "calabi" {
		t.Errorf("expected service 'calabi', got %q", l.Service())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: FormatJSON, Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, "calabi", &buf)

	l.WithComponent("scanner").Info("bets placed", Fields(FieldCount, 4))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "bets placed" {
		t.Errorf("expected message 'bets placed', got %v", entry["message"])
	}
	if entry[FieldComponent] != "scanner" {
		t.Errorf("expected component 'scanner', got %v", entry[FieldComponent])
	}
	if entry[FieldService] != "calabi" {
		t.Errorf("expected service 'calabi', got %v", entry[FieldService])
	}
	if entry[FieldCount] != float64(4) {
		t.Errorf("expected count 4, got %v", entry[FieldCount])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatJSON}, "calabi", &buf)

	l.Debug("hidden")
	l.Trace("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/trace to be filtered at info level, got %q", buf.String())
	}

	l.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected warn message in output, got %q", buf.String())
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "calabi", &buf)

	l.Info("starting calabi")
	out := buf.String()
	if !strings.Contains(out, "[CAL][INF]") {
		t.Errorf("expected service and level tag in console output, got %q", out)
	}
	if !strings.Contains(out, "starting calabi") {
		t.Errorf("expected message in console output, got %q", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatJSON}, "calabi", &buf)

	l.WithError(errors.New("boom")).Error("loop failed")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got %q", buf.String())
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("LOG_JSON selects json format", func(t *testing.T) {
		t.Setenv("LOG_JSON", "true")
		t.Setenv("LOG_FORMAT", "")
		cfg := ConfigFromEnv()
		if cfg.Format != FormatJSON {
			t.Errorf("expected json format, got %q", cfg.Format)
		}
	})

	t.Run("defaults to console at info", func(t *testing.T) {
		t.Setenv("LOG_JSON", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("LOG_FORMAT", "")
		cfg := ConfigFromEnv()
		if cfg.Format != FormatConsole {
			t.Errorf("expected console format, got %q", cfg.Format)
		}
		if cfg.Level != "info" {
			t.Errorf("expected info level, got %q", cfg.Level)
		}
	})

	t.Run("LOG_LEVEL is lower-cased", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "DEBUG")
		cfg := ConfigFromEnv()
		if cfg.Level != "debug" {
			t.Errorf("expected debug level, got %q", cfg.Level)
		}
	})
}

func TestGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected a default global logger to be created")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}

	jsonCfg := Config{JSON: true, Format: FormatConsole}
	jsonCfg.ApplyDefaults()
	if jsonCfg.Format != FormatJSON {
		t.Errorf("expected json flag to override format, got %q", jsonCfg.Format)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"trace level", Config{Level: "trace", Format: "json", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "bet", "amount", 500}, map[string]interface{}{"op": "bet", "amount": 500}},
		{"odd number of args", []interface{}{"op", "bet", "trailing"}, map[string]interface{}{"op": "bet"}},
		{"empty", []interface{}{}, map[string]interface{}{}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Fatalf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("expected %s=%v, got %v", k, v, result[k])
				}
			}
		})
	}
}
