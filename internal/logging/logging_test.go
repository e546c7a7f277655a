package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw   string
		level zerolog.Level
		ok    bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.InfoLevel, false},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.raw)
		if level != tt.level || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.raw, level, ok, tt.level, tt.ok)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogJSON, "true")
	t.Setenv(EnvLogNoColor, "not-a-bool")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.Level != "debug" || !cfg.JSON || cfg.NoColor {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw     string
		v, ok   bool
		wantErr bool
	}{
		{"", false, false, false},
		{"  ", false, false, false},
		{"true", true, true, false},
		{"TRUE", true, true, false},
		{" False ", false, true, false},
		{"1", true, true, false},
		{"0", false, true, false},
		{"yes", false, true, true},
	}

	for _, tt := range tests {
		v, ok, err := ParseBool(tt.raw)
		if v != tt.v || ok != tt.ok || (err != nil) != tt.wantErr {
			t.Errorf("ParseBool(%q) = %v, %v, %v; want %v, %v, err=%v", tt.raw, v, ok, err, tt.v, tt.ok, tt.wantErr)
		}
	}
}

func TestApplyEnv_IgnoresUnknownLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "chatty")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.Level != "info" {
		t.Errorf("expected level to stay info, got %q", cfg.Level)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("protoview", &buf, Config{Level: "warn", JSON: true})

	logger.Info().Msg("hidden")
	logger.Warn().Int("fields", 3).Msg("shown")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "shown" || entry["app"] != "protoview" || entry["fields"] != float64(3) {
		t.Errorf("unexpected entry %v", entry)
	}
}
