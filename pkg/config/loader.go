package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/methodlog/pkg/errors"
	"github.com/arthur-debert/methodlog/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix marks the environment variables that override file values,
// e.g. METHODLOG_MIN_DURATION_MS=250
const envPrefix = "METHODLOG_"

// Load builds the configuration in three layers: built-in defaults,
// then the config file at path (skipped when path is empty or the file
// does not exist), then METHODLOG_* environment variables. The file
// parser is chosen by extension: .yaml/.yml use YAML, everything else
// TOML. On any failure no partial Config is returned.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. Config file, when present
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to parse config file %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded config file")
		} else {
			logger.Debug().Str("path", path).Msg("Config file not found, using defaults")
		}
	}

	// 3. Environment overrides
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", "-")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Bool("enabled", cfg.Enabled).
		Int("ruleCount", len(cfg.Rules)).
		Msg("Configuration loaded")

	return &cfg, nil
}

// parserFor picks the koanf parser for a config file by its extension
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// defaultMap mirrors Default() as a koanf confmap layer
func defaultMap() map[string]interface{} {
	return map[string]interface{}{
		"enabled":          true,
		"log-arguments":    true,
		"log-return-value": true,
		"min-duration-ms":  int64(0),
		"max-result-size":  -1,
		"mask-sensitive":   false,
		"base-package":     "",
		"auto-reload":      true,
	}
}
