package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"graph-copier/internal/logger"
	"graph-copier/options"
	"graph-copier/primitive"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "GRAPHCOPIER"

// Config holds all configuration for the command.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log" yaml:"log"`
	// Merge holds the merge profile.
	Merge Profile `mapstructure:"merge" yaml:"merge"`
}

// Profile is the serializable form of merge options.
type Profile struct {
	// Paths restricts the merge to dotted attribute paths; empty merges everything.
	Paths []string `mapstructure:"paths" yaml:"paths" default:""`
	// Exclusion turns Paths into the attributes to leave out.
	Exclusion         bool `mapstructure:"exclusion" yaml:"exclusion" default:"false"`
	NullsOnly         bool `mapstructure:"nulls_only" yaml:"nulls_only" default:"false"`
	MergeCollections  bool `mapstructure:"merge_collections" yaml:"merge_collections" default:"false"`
	UpdateCollections bool `mapstructure:"update_collections" yaml:"update_collections" default:"false"`
	// Allow names the attribute categories merged besides plain ones: transient, static,
	// immutable, underscored, or the presets none, all and default.
	Allow []string `mapstructure:"allow" yaml:"allow" default:"default"`
	// Coercion names the conversion categories applied to loosely typed values.
	Coercion []string `mapstructure:"coercion" yaml:"coercion" default:"safe_number,unsafe_number,enum_string,datetime,duration"`
}

// Load loads configuration from the .env file in dir, the optional config file
// and GRAPHCOPIER_* environment variables, in increasing precedence.
func Load(dir, file string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	// Map environment variables to nested keys (e.g. GRAPHCOPIER_LOG_LEVEL -> log.level)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// Options converts the profile into merge options.
func (p *Profile) Options() ([]options.Option, error) {
	allow, err := options.ParseAllow(p.Allow...)
	if err != nil {
		return nil, err
	}

	coercion, err := primitive.ParseCategories(p.Coercion...)
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.Allowing(allow),
		options.WithCoercion(coercion),
	}

	paths := nonEmpty(p.Paths)

	switch {
	case len(paths) == 0:
	case p.Exclusion:
		opts = append(opts, options.Excluding(paths...))
	default:
		opts = append(opts, options.WithPaths(paths...))
	}

	if p.NullsOnly {
		opts = append(opts, options.NullsOnly())
	}

	if p.MergeCollections {
		opts = append(opts, options.MergeCollections())
	}

	if p.UpdateCollections {
		opts = append(opts, options.UpdateCollections())
	}

	return opts, nil
}

func nonEmpty(values []string) []string {
	var res []string

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}

	return res
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := range t.NumField() {
		field := t.Field(i)

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
