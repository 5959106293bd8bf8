package config

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/shishobooks/removecrud/pkg/errcodes"
)

// Config is the resolved configuration for one run. It's built once in main
// and handed to the worker.
type Config struct {
	// Directory is the download directory to clean up.
	Directory string
	// Enabled turns the extension on. Defaults to true.
	Enabled bool
	// LogLevel is one of debug, info, warn or error. Defaults to info.
	LogLevel string
	// DryRun logs the renames that would happen without performing them.
	DryRun bool
	// ReportFile, when set, receives a JSON report of the run.
	ReportFile string
	// MetricsFile, when set, receives Prometheus metrics in the textfile
	// collector format.
	MetricsFile string

	// NZBName and Category are informational values passed by the host.
	NZBName  string
	Category string
}

// Overrides carries values given on the command line. They take precedence
// over the environment and the config file.
type Overrides struct {
	ConfigFile  string
	Directory   string
	Enabled     *bool
	LogLevel    string
	DryRun      *bool
	ReportFile  string
	MetricsFile string
}

const (
	configFileENV    = "CONFIG_FILE"
	optionPrefixENV  = "NZBPO_"
	processPrefixENV = "NZBPP_"
)

// optionKeys maps the host's script option variables to config keys.
var optionKeys = map[string]string{
	"NZBPO_ENABLED":     "enabled",
	"NZBPO_LOGLEVEL":    "log_level",
	"NZBPO_DRYRUN":      "dry_run",
	"NZBPO_REPORTFILE":  "report_file",
	"NZBPO_METRICSFILE": "metrics_file",
}

// processKeys maps the host's per-download variables to config keys.
var processKeys = map[string]string{
	"NZBPP_DIRECTORY": "directory",
	"NZBPP_NZBNAME":   "nzb_name",
	"NZBPP_CATEGORY":  "category",
}

type rawConfig struct {
	Directory   string `koanf:"directory" mod:"trim"`
	Enabled     string `koanf:"enabled" mod:"trim,lcase" default:"yes" validate:"oneof=yes no true false enabled disabled on off 1 0"`
	LogLevel    string `koanf:"log_level" mod:"trim,lcase" default:"info" validate:"oneof=debug info warn warning error"`
	DryRun      string `koanf:"dry_run" mod:"trim,lcase" default:"no" validate:"oneof=yes no true false enabled disabled on off 1 0"`
	ReportFile  string `koanf:"report_file" mod:"trim"`
	MetricsFile string `koanf:"metrics_file" mod:"trim"`
	NZBName     string `koanf:"nzb_name"`
	Category    string `koanf:"category"`
}

// New resolves the configuration from, in increasing order of precedence,
// defaults, the YAML config file, the host's environment and overrides.
func New(o Overrides) (*Config, error) {
	k := koanf.New(".")

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(configFileENV)
	}
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errors.WithStack(errcodes.ConfigurationError(fmt.Sprintf("Config file %q can't be read: %v", configFile, err)))
		}
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.WithStack(errcodes.ConfigurationError(fmt.Sprintf("Config file %q is invalid: %v", configFile, err)))
		}
	}

	if err := k.Load(env.ProviderWithValue(optionPrefixENV, ".", envKey(optionKeys)), nil); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := k.Load(env.ProviderWithValue(processPrefixENV, ".", envKey(processKeys)), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	raw := &rawConfig{}
	if err := k.Unmarshal("", raw); err != nil {
		return nil, errors.WithStack(errcodes.ConfigurationError(fmt.Sprintf("Config is invalid: %v", err)))
	}
	raw.applyOverrides(o)

	if err := modifiers.New().Struct(context.Background(), raw); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := defaults.Set(raw); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	logLevel := raw.LogLevel
	if logLevel == "warning" {
		logLevel = "warn"
	}

	return &Config{
		Directory:   raw.Directory,
		Enabled:     parseBool(raw.Enabled),
		LogLevel:    logLevel,
		DryRun:      parseBool(raw.DryRun),
		ReportFile:  raw.ReportFile,
		MetricsFile: raw.MetricsFile,
		NZBName:     raw.NZBName,
		Category:    raw.Category,
	}, nil
}

// NewForTest returns a config with defaults applied for the given directory.
func NewForTest(dir string) *Config {
	return &Config{
		Directory: dir,
		Enabled:   true,
		LogLevel:  "debug",
	}
}

// Level returns the zerolog level for LogLevel, falling back to info.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (raw *rawConfig) applyOverrides(o Overrides) {
	if o.Directory != "" {
		raw.Directory = o.Directory
	}
	if o.Enabled != nil {
		raw.Enabled = formatBool(*o.Enabled)
	}
	if o.LogLevel != "" {
		raw.LogLevel = o.LogLevel
	}
	if o.DryRun != nil {
		raw.DryRun = formatBool(*o.DryRun)
	}
	if o.ReportFile != "" {
		raw.ReportFile = o.ReportFile
	}
	if o.MetricsFile != "" {
		raw.MetricsFile = o.MetricsFile
	}
}

// envKey maps known variables to their config key. Unknown and empty
// variables are skipped so they don't mask values from the config file; the
// host passes every option, set or not.
func envKey(keys map[string]string) func(string, string) (string, interface{}) {
	return func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return keys[key], value
	}
}

func validate(raw *rawConfig) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("koanf")
	})
	err := v.Struct(raw)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return errors.WithStack(err)
	}
	fe := errs[0]
	return errors.WithStack(errcodes.ValidationError(
		fmt.Sprintf("Invalid value %q for %s; expected one of: %s", fe.Value(), fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")),
	))
}

func parseBool(s string) bool {
	switch s {
	case "yes", "true", "enabled", "on", "1":
		return true
	}
	return false
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
