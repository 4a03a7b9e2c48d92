package hierarchy

import (
	"fmt"
	"strings"

	"schema-generator/internal/analyze"
	"schema-generator/internal/diagnostic"
)

// Policy decides what an ambiguous parent produces.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyWarn   Policy = "warn"
	PolicyError  Policy = "error"
)

// Options configures a Resolver.
type Options struct {
	Root      string // polymorphic root name
	Ambiguous Policy
}

// Resolver computes bean parents for one run.
type Resolver struct {
	opts  Options
	diags *diagnostic.Diagnostics
}

// NewResolver creates a resolver recording ambiguities into diags.
func NewResolver(opts Options, diags *diagnostic.Diagnostics) *Resolver {
	if opts.Ambiguous == "" {
		opts.Ambiguous = PolicyWarn
	}

	return &Resolver{opts: opts, diags: diags}
}

// Parent returns the schema name of d's parent, or "" when it has none.
func (r *Resolver) Parent(d *analyze.Declaration) string {
	if !d.IsRecord() {
		return ""
	}

	if d.IsInterface {
		return r.single(d, d.Embeds, "embeds")
	}

	if d.Base != "" {
		return d.Base
	}

	if parent := r.single(d, d.Interfaces, "implements"); parent != "" {
		return parent
	}

	if d.Polymorphic {
		return r.opts.Root
	}

	return ""
}

// single returns the only candidate, or "" after reporting when there are
// several.
func (r *Resolver) single(d *analyze.Declaration, candidates []string, verb string) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}

	msg := fmt.Sprintf("%s %s %s; no parent is emitted", d.Name, verb, strings.Join(candidates, ", "))

	switch r.opts.Ambiguous {
	case PolicyError:
		r.diags.AddError(diagnostic.CodeAmbiguousParent, msg, d.Name, "")
	case PolicyWarn:
		r.diags.AddWarning(diagnostic.CodeAmbiguousParent, msg, d.Name, "")
	case PolicyIgnore:
	}

	return ""
}
