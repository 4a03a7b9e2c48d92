package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "schema-generator.yaml"

// Ambiguous parent policies.
const (
	AmbiguousIgnore = "ignore"
	AmbiguousWarn   = "warn"
	AmbiguousError  = "error"
)

// Defaults.
const (
	DefaultModule          = "cfg"
	DefaultOutput          = "cfg.schema"
	DefaultMarker          = "Variant"
	DefaultRoot            = "Polymorphic"
	DefaultReservedPattern = "^XXX_"
	DefaultDebounce        = 200 * time.Millisecond
)

// Config is the content of schema-generator.yaml.
type Config struct {
	Module        string `yaml:"module,omitempty"`
	Input         string `yaml:"input,omitempty"`
	Registrations string `yaml:"registrations,omitempty"`
	Output        string `yaml:"output,omitempty"`

	// Aliases maps type names (bare, package.Name or full import path) to
	// schema scalars. They take precedence over declarations.
	Aliases map[string]string `yaml:"aliases,omitempty"`
	// PathAliases maps import path prefixes to directories.
	PathAliases map[string]string `yaml:"path_aliases,omitempty"`

	WrapperTypes StringOrArray `yaml:"wrapper_types,omitempty"`
	UnionTypes   StringOrArray `yaml:"union_types,omitempty"`
	PairTypes    StringOrArray `yaml:"pair_types,omitempty"`
	ExcludeDirs  StringOrArray `yaml:"exclude_dirs,omitempty"`

	PolymorphicMarker string `yaml:"polymorphic_marker,omitempty"`
	PolymorphicRoot   string `yaml:"polymorphic_root,omitempty"`
	ReservedPattern   string `yaml:"reserved_pattern,omitempty"`
	TrimEnumPrefix    *bool  `yaml:"trim_enum_prefix,omitempty"`
	AmbiguousParent   string `yaml:"ambiguous_parent,omitempty"`

	WatchDebounce time.Duration `yaml:"watch_debounce,omitempty"`
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)

	return &cfg
}

// LoadFile loads and parses a config file. Relative paths in the file are
// taken relative to the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.resolvePaths(filepath.Dir(path))

	return cfg, nil
}

// Load loads path when given. Without a path it loads DefaultFile from the
// working directory if there is one, and falls back to the defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	if _, err := os.Stat(DefaultFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	return LoadFile(DefaultFile)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// An empty file decodes to io.EOF and means "all defaults".
	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Module == "" {
		cfg.Module = DefaultModule
	}

	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	if cfg.WrapperTypes.IsEmpty() {
		cfg.WrapperTypes = StringOrArray{"Readonly", "Lazy"}
	}

	if cfg.UnionTypes.IsEmpty() {
		cfg.UnionTypes = StringOrArray{"OneOf2", "OneOf3", "OneOf4"}
	}

	if cfg.PairTypes.IsEmpty() {
		cfg.PairTypes = StringOrArray{"Pair"}
	}

	if cfg.PolymorphicMarker == "" {
		cfg.PolymorphicMarker = DefaultMarker
	}

	if cfg.PolymorphicRoot == "" {
		cfg.PolymorphicRoot = DefaultRoot
	}

	if cfg.ReservedPattern == "" {
		cfg.ReservedPattern = DefaultReservedPattern
	}

	if cfg.TrimEnumPrefix == nil {
		trim := true
		cfg.TrimEnumPrefix = &trim
	}

	if cfg.AmbiguousParent == "" {
		cfg.AmbiguousParent = AmbiguousWarn
	}

	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = DefaultDebounce
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	var errs []error

	switch c.AmbiguousParent {
	case AmbiguousIgnore, AmbiguousWarn, AmbiguousError:
	default:
		errs = append(errs, fmt.Errorf("ambiguous_parent must be one of %s, %s or %s, got %q",
			AmbiguousIgnore, AmbiguousWarn, AmbiguousError, c.AmbiguousParent))
	}

	if _, err := regexp.Compile(c.ReservedPattern); err != nil {
		errs = append(errs, fmt.Errorf("reserved_pattern: %w", err))
	}

	for name, scalar := range c.Aliases {
		if name == "" || scalar == "" {
			errs = append(errs, fmt.Errorf("aliases: empty entry %q: %q", name, scalar))
		}
	}

	return errors.Join(errs...)
}

// Reserved returns the compiled reserved field pattern.
func (c *Config) Reserved() *regexp.Regexp {
	return regexp.MustCompile(c.ReservedPattern)
}

// TrimPrefix reports whether enum member names lose their type name prefix.
func (c *Config) TrimPrefix() bool {
	return c.TrimEnumPrefix == nil || *c.TrimEnumPrefix
}

func (c *Config) resolvePaths(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}

		return filepath.Join(dir, p)
	}

	c.Input = abs(c.Input)
	c.Registrations = abs(c.Registrations)
	c.Output = abs(c.Output)

	for prefix, target := range c.PathAliases {
		c.PathAliases[prefix] = abs(target)
	}
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
