package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/anirudhraja/protoview/internal/logging"
	"github.com/anirudhraja/protoview/wire"
)

const (
	EnvMaxDepth       = "PROTOVIEW_MAX_DEPTH"
	EnvExtendedVarint = "PROTOVIEW_EXTENDED_VARINT"
	EnvLegacyFixed32  = "PROTOVIEW_LEGACY_FIXED32"
	EnvProtoPaths     = "PROTOVIEW_PROTO_PATHS"
)

// Config holds decoder and CLI settings
type Config struct {
	MaxDepth       int            `toml:"max_depth"`
	ExtendedVarint bool           `toml:"extended_varint"`
	LegacyFixed32  bool           `toml:"legacy_fixed32"`
	ProtoPaths     []string       `toml:"proto_paths"`
	Log            logging.Config `toml:"log"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		MaxDepth:   wire.DefaultMaxDepth,
		ProtoPaths: []string{"."},
		Log:        logging.DefaultConfig(),
	}
}

// Load reads path (if non-empty) over the defaults, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		var raw Config
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, errors.Wrapf(err, "load config %s", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
		}

		if meta.IsDefined("max_depth") {
			cfg.MaxDepth = raw.MaxDepth
		}
		if meta.IsDefined("extended_varint") {
			cfg.ExtendedVarint = raw.ExtendedVarint
		}
		if meta.IsDefined("legacy_fixed32") {
			cfg.LegacyFixed32 = raw.LegacyFixed32
		}
		if meta.IsDefined("proto_paths") {
			cfg.ProtoPaths = raw.ProtoPaths
		}
		if meta.IsDefined("log", "level") {
			cfg.Log.Level = raw.Log.Level
		}
		if meta.IsDefined("log", "json") {
			cfg.Log.JSON = raw.Log.JSON
		}
		if meta.IsDefined("log", "no_color") {
			cfg.Log.NoColor = raw.Log.NoColor
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if raw := strings.TrimSpace(os.Getenv(EnvMaxDepth)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.Wrapf(err, "parse %s", EnvMaxDepth)
		}
		cfg.MaxDepth = n
	}
	if err := envBool(EnvExtendedVarint, &cfg.ExtendedVarint); err != nil {
		return err
	}
	if err := envBool(EnvLegacyFixed32, &cfg.LegacyFixed32); err != nil {
		return err
	}
	if raw := strings.TrimSpace(os.Getenv(EnvProtoPaths)); raw != "" {
		cfg.ProtoPaths = strings.Split(raw, string(os.PathListSeparator))
	}
	logging.ApplyEnv(&cfg.Log)
	return nil
}

func envBool(name string, dst *bool) error {
	v, ok, err := logging.ParseBool(os.Getenv(name))
	if err != nil {
		return errors.Wrapf(err, "parse %s", name)
	}
	if ok {
		*dst = v
	}
	return nil
}

// Validate rejects settings the decoder cannot honor
func Validate(cfg Config) error {
	if cfg.MaxDepth < -1 {
		return errors.Errorf("invalid max_depth %d (use -1 for no limit)", cfg.MaxDepth)
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return errors.Errorf("invalid log level %q", cfg.Log.Level)
	}
	return nil
}

// DecodeOptions converts the settings into wire options
func (c Config) DecodeOptions() []wire.Option {
	return []wire.Option{wire.WithOptions(wire.Options{
		MaxDepth:       c.MaxDepth,
		ExtendedVarint: c.ExtendedVarint,
		LegacyFixed32:  c.LegacyFixed32,
	})}
}
