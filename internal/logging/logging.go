package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "PROTOVIEW_LOG_LEVEL"
	EnvLogJSON    = "PROTOVIEW_LOG_JSON"
	EnvLogNoColor = "PROTOVIEW_LOG_NOCOLOR"
)

// Config selects log level and output format
type Config struct {
	Level   string `toml:"level"`
	JSON    bool   `toml:"json"`
	NoColor bool   `toml:"no_color"`
}

// DefaultConfig logs at info level to a colored console
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// New builds a logger tagged with app, writing to w
func New(app string, w io.Writer, cfg Config) zerolog.Logger {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		level = zerolog.InfoLevel
	}

	out := w
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", app).Logger()
}

// ApplyEnv overrides cfg from PROTOVIEW_LOG_* variables
func ApplyEnv(cfg *Config) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := ParseLevel(raw); ok {
			cfg.Level = raw
		}
	}
	if v, ok, err := ParseBool(os.Getenv(EnvLogJSON)); ok && err == nil {
		cfg.JSON = v
	}
	if v, ok, err := ParseBool(os.Getenv(EnvLogNoColor)); ok && err == nil {
		cfg.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// ParseBool reads a boolean environment value. ok is false when raw is
// empty; any case of true/false and 1/0 is accepted.
func ParseBool(raw string) (v bool, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false, nil
	}
	v, err = strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, true, err
	}
	return v, true, nil
}
