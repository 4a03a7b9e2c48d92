// Package config loads schema-generator.yaml.
//
// Every key is optional; command line flags override file values.
//
//	module: cfg
//	input: ./gamedata
//	output: ./schema/cfg.schema
//	aliases: {Vec3: vector3}
//	ambiguous_parent: warn
package config
