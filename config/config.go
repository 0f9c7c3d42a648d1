// Package config loads batch rendering settings using Viper: a YAML file,
// TOKENRENDER_ environment overrides and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/byte4ever/tokenrender/logging"
	"github.com/byte4ever/tokenrender/records"
	"github.com/byte4ever/tokenrender/tokenlist"
	"github.com/byte4ever/tokenrender/values"
)

// EnvPrefix prefixes environment overrides, e.g.
// TOKENRENDER_SOURCE_PATH.
const EnvPrefix = "TOKENRENDER"

// Config holds all settings for a batch render.
type Config struct {
	// Template is the template file path.
	Template string `mapstructure:"template"`

	// Tokens are literal vocabulary entries.
	Tokens []string `mapstructure:"tokens"`

	// Fields are record field names, wrapped in
	// StartTag/EndTag to form vocabulary entries.
	Fields []string `mapstructure:"fields"`

	StartTag string `mapstructure:"start_tag"`
	EndTag   string `mapstructure:"end_tag"`

	// Missing is "error", "empty" or "keep".
	Missing string `mapstructure:"missing"`

	Source records.Spec `mapstructure:"source"`

	// Output is the output file path (stdout if empty).
	Output string `mapstructure:"output"`

	Separator   string `mapstructure:"separator"`
	Parallelism int    `mapstructure:"parallelism"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"template":    "template",
	"token":       "tokens",
	"field":       "fields",
	"start-tag":   "start_tag",
	"end-tag":     "end_tag",
	"missing":     "missing",
	"source":      "source.path",
	"format":      "source.format",
	"query":       "source.query",
	"output":      "output",
	"separator":   "separator",
	"parallelism": "parallelism",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("template", "")
	v.SetDefault("tokens", []string{})
	v.SetDefault("fields", []string{})
	v.SetDefault("start_tag", values.DefaultStartTag)
	v.SetDefault("end_tag", values.DefaultEndTag)
	v.SetDefault("missing", tokenlist.MissingError.String())
	v.SetDefault("source.format", records.FormatJSONLines)
	v.SetDefault("source.path", "")
	v.SetDefault("source.query", "")
	v.SetDefault("output", "")
	v.SetDefault("separator", "\n")
	v.SetDefault("parallelism", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logging.FormatText))
}

// Load reads the config file at path (skipped when empty),
// applies environment overrides and the flags of fs that
// were set on the command line. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	const errCtx = "loading config"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			fl := fs.Lookup(name)
			if fl == nil {
				continue
			}

			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf(
					"%s: binding flag %s: %w",
					errCtx, name, err,
				)
			}
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &cfg, nil
}

// Tags returns the field delimiters.
func (c *Config) Tags() values.Tags {
	return values.Tags{Start: c.StartTag, End: c.EndTag}
}

// Vocabulary returns the literal tokens followed by the
// wrapped fields.
func (c *Config) Vocabulary() []string {
	out := make([]string, 0, len(c.Tokens)+len(c.Fields))
	out = append(out, c.Tokens...)

	return append(out, c.Tags().Vocabulary(c.Fields)...)
}

// MissingAction parses Missing.
func (c *Config) MissingAction() (tokenlist.MissingAction, error) {
	return tokenlist.ParseMissingAction(c.Missing)
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
	}
}

// Validate checks that a run can be attempted.
func (c *Config) Validate() error {
	const errCtx = "validating config"

	var errs []error

	if c.Template == "" {
		errs = append(errs, errors.New("template is required"))
	}

	if len(c.Tokens) == 0 && len(c.Fields) == 0 {
		errs = append(errs, errors.New(
			"at least one token or field is required",
		))
	}

	if c.Parallelism < 0 {
		errs = append(errs, fmt.Errorf(
			"parallelism must not be negative, got %d",
			c.Parallelism,
		))
	}

	if _, err := c.MissingAction(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", errCtx, errors.Join(errs...))
	}

	return nil
}
