// Package config loads the settings of a simulation project.
package config

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-simex/pkg/pipeline/composer"
)

const (
	// FileName is the settings file looked up in the working directory when no path is given.
	FileName = "simex.yaml"

	envPrefix = "SIMEX"
)

var ErrProjectRequired = errors.New("project is required")

// Settings of a project. Modules is nil when the settings do not list any module.
type Settings struct {
	Project         string    `mapstructure:"project"`
	Modules         []string  `mapstructure:"modules"`
	Catalog         string    `mapstructure:"catalog"`
	StrictContracts bool      `mapstructure:"strict_contracts"`
	Dir             string    `mapstructure:"dir"`
	Graph           string    `mapstructure:"graph"`
	Log             LogConfig `mapstructure:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// Load reads the settings file at path, or simex.yaml in the working directory when path is empty.
// Every key can be overridden by a SIMEX_ environment variable, e.g. SIMEX_LOG_LEVEL.
// Dir defaults to the directory of the settings file.
func Load(path string) (*Settings, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read settings")
	}

	var settings Settings
	err = v.Unmarshal(&settings)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}

	if settings.Dir == "" {
		settings.Dir = filepath.Dir(v.ConfigFileUsed())
	}

	err = settings.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project", "")
	v.SetDefault("catalog", "")
	v.SetDefault("strict_contracts", false)
	v.SetDefault("dir", "")
	v.SetDefault("graph", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.add_source", false)
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if s.Project == "" {
		return ErrProjectRequired
	}
	err := composer.ValidateProjectName(s.Project)
	if err != nil {
		return err
	}

	return s.Log.Validate()
}

// Validate checks the logger settings.
func (c LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Errorf("invalid log level: %s", c.Level)
	}

	if c.Format != "json" && c.Format != "text" {
		return errors.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Format)
	}

	switch c.Output {
	case "stdout", "stderr":
	case "file":
		if c.FilePath == "" {
			return errors.New("log.file_path is required when log.output is 'file'")
		}
	default:
		return errors.Errorf("invalid log output: %s", c.Output)
	}

	return nil
}

// CatalogPath returns the catalog path as seen from the working directory. Relative catalog paths are relative
// to the project directory, where the generated driver runs.
func (s *Settings) CatalogPath() string {
	if s.Catalog == "" || filepath.IsAbs(s.Catalog) {
		return s.Catalog
	}

	return filepath.Join(s.Dir, s.Catalog)
}
