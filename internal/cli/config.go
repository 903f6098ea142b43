package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pcbcore/internal/i18n"
	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyUnits     = "units"
	cfgKeyAngles    = "angles"
	cfgKeyCatalog   = "catalog"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
	cfgKeyDebug     = "debug"

	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string                `yaml:"backend"`
	DataDir   string                `yaml:"data_dir,omitempty"`
	Units     types.UnitScale       `yaml:"units"`
	Angles    types.AngleConvention `yaml:"angles"`
	Catalog   string                `yaml:"catalog,omitempty"`
	LogLevel  string                `yaml:"log_level"`
	LogFormat string                `yaml:"log_format"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml or config directory is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	defaults := types.DefaultFormatConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyUnits, string(defaults.Units))
	v.SetDefault(cfgKeyAngles, string(defaults.Angles))
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeyDebug, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml from the current settings if the
// file does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// loadCatalog returns the translation catalog named in config.yaml. Relative
// paths are resolved against the config directory; an empty name selects
// English. Keys the catalog leaves untranslated are logged as a warning.
func loadCatalog(logger *zap.Logger, configDir, name string) (*i18n.Catalog, error) {
	if name == "" {
		return i18n.English(), nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(configDir, name)
	}
	c, err := i18n.Load(name)
	if err != nil {
		return nil, err
	}
	if missing := c.Missing(); len(missing) > 0 {
		logger.Warn("catalog is missing translations",
			zap.String("path", name),
			zap.String("language", c.Language),
			zap.Strings("keys", missing))
	}
	return c, nil
}
