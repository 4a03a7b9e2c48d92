package plan

import (
	"schema-generator/internal/analyze"
	"schema-generator/internal/config"
	"schema-generator/internal/hierarchy"
)

// Config holds everything one run needs.
type Config struct {
	Module        string
	Input         string // directory to scan; wins over Registrations
	Registrations string // Go file with Register calls
	Output        string
	Force         bool // ignore the previous document

	Aliases     map[string]string
	PathAliases map[string]string
	ExcludeDirs []string

	Analyze         analyze.Options
	PolymorphicRoot string
	Ambiguous       hierarchy.Policy
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return FromConfig(config.Default())
}

// FromConfig converts a loaded config file into a run configuration.
func FromConfig(c *config.Config) Config {
	opts := analyze.DefaultOptions()
	opts.ReservedPattern = c.Reserved()
	opts.TrimEnumPrefix = c.TrimPrefix()
	opts.PolymorphicMarker = c.PolymorphicMarker
	opts.WrapperTypes = c.WrapperTypes
	opts.UnionTypes = c.UnionTypes
	opts.PairTypes = c.PairTypes

	return Config{
		Module:          c.Module,
		Input:           c.Input,
		Registrations:   c.Registrations,
		Output:          c.Output,
		Aliases:         c.Aliases,
		PathAliases:     c.PathAliases,
		ExcludeDirs:     c.ExcludeDirs,
		Analyze:         opts,
		PolymorphicRoot: c.PolymorphicRoot,
		Ambiguous:       hierarchy.Policy(c.AmbiguousParent),
	}
}
