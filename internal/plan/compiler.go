package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"schema-generator/internal/analyze"
	"schema-generator/internal/cache"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/gen"
	"schema-generator/internal/hierarchy"
	"schema-generator/internal/mapping"
)

// Result is the outcome of one run.
type Result struct {
	Document     *gen.Document
	Declarations *analyze.DeclarationSet
	Regenerated  []string // entries rendered in this run
	Reused       []string // entries copied from the previous document
	Diagnostics  diagnostic.Diagnostics
	Written      bool
}

// Compiler runs compilations with a fixed configuration.
type Compiler struct {
	cfg Config
	log zerolog.Logger
}

// NewCompiler creates a compiler.
func NewCompiler(cfg Config, log zerolog.Logger) *Compiler {
	return &Compiler{cfg: cfg, log: log}
}

// Run compiles and, when no error diagnostic was recorded, writes the
// document. A run failing on diagnostics returns a *diagnostic.Error along
// with the result holding them.
func (c *Compiler) Run() (*Result, error) {
	res, err := c.Compile()
	if err != nil {
		return res, err
	}

	if err := gen.WriteFile(c.cfg.Output, res.Document.Bytes()); err != nil {
		return res, err
	}

	res.Written = true

	c.log.Info().
		Int("declarations", len(res.Regenerated)+len(res.Reused)).
		Int("regenerated", len(res.Regenerated)).
		Int("reused", len(res.Reused)).
		Str("output", c.cfg.Output).
		Msg("schema written")

	return res, nil
}

// Compile builds the document without writing it.
func (c *Compiler) Compile() (*Result, error) {
	if err := c.checkInput(); err != nil {
		return nil, err
	}

	diags := &diagnostic.Diagnostics{}

	idx, err := cache.Load(c.cfg.Output, c.cfg.Force, diags)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("entries", idx.Len()).Bool("force", c.cfg.Force).Msg("cache loaded")

	analyzer := analyze.NewAnalyzer(c.cfg.Analyze)

	set, err := c.extract(analyzer)
	if err != nil {
		return nil, err
	}

	diags.Merge(analyzer.Diagnostics())

	res := &Result{
		Document:     gen.NewDocument(c.cfg.Module),
		Declarations: set,
	}

	mapper := mapping.NewMapper(set, mapping.Options{
		Aliases:         c.cfg.Aliases,
		PolymorphicRoot: c.cfg.PolymorphicRoot,
	}, diags)

	parents := hierarchy.NewResolver(hierarchy.Options{
		Root:      mapper.Root(),
		Ambiguous: c.cfg.Ambiguous,
	}, diags)

	for _, d := range set.Emitted() {
		if text, ok := idx.Lookup(d.Name, d.Hash); ok {
			res.Document.Add(gen.Entry{Name: d.Name, Hash: d.Hash, Text: text, Cached: true})
			res.Reused = append(res.Reused, d.Name)

			continue
		}

		text, err := render(d, mapper, parents)
		if err != nil {
			return nil, err
		}

		c.log.Debug().Str("declaration", d.Name).Str("kind", d.Kind.String()).Msg("regenerated")

		res.Document.Add(gen.Entry{Name: d.Name, Hash: d.Hash, Text: text})
		res.Regenerated = append(res.Regenerated, d.Name)
	}

	res.Diagnostics = *diags
	c.logDiagnostics(*diags)

	if err := diags.Error(); err != nil {
		return res, err
	}

	return res, nil
}

func (c *Compiler) checkInput() error {
	kind, path, wantDir := "input directory", c.cfg.Input, true
	if path == "" {
		kind, path, wantDir = "registration file", c.cfg.Registrations, false
	}

	if path == "" {
		return &MissingInputError{}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &MissingInputError{Kind: kind, Path: path}
		}

		return fmt.Errorf("checking %s: %w", kind, err)
	}

	if info.IsDir() != wantDir {
		return &MissingInputError{Kind: kind, Path: path}
	}

	return nil
}

func (c *Compiler) extract(analyzer *analyze.Analyzer) (*analyze.DeclarationSet, error) {
	if c.cfg.Input != "" {
		if c.cfg.Registrations != "" {
			c.log.Debug().Str("registrations", c.cfg.Registrations).Msg("input directory given, registrations ignored")
		}

		set, err := analyzer.ExtractDir(c.cfg.Input, analyze.ScanOptions{ExcludeDirs: c.cfg.ExcludeDirs})
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", c.cfg.Input, err)
		}

		return set, nil
	}

	resolver, err := analyze.DefaultResolver(filepath.Dir(c.cfg.Registrations), c.cfg.PathAliases)
	if err != nil {
		return nil, err
	}

	set, err := analyzer.ExtractRegistered(c.cfg.Registrations, resolver)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", c.cfg.Registrations, err)
	}

	return set, nil
}

func (c *Compiler) logDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		c.log.Warn().Str("code", d.Code).Str("declaration", d.Declaration).Str("field", d.Field).Msg(d.Message)
	}

	for _, d := range diags.Infos {
		c.log.Info().Str("code", d.Code).Str("declaration", d.Declaration).Msg(d.Message)
	}
}

// render maps and renders the block of one declaration.
func render(d *analyze.Declaration, mapper *mapping.Mapper, parents *hierarchy.Resolver) (string, error) {
	if d.IsEnum() {
		items := make([]gen.Item, len(d.Members))
		for i, m := range d.Members {
			items[i] = gen.Item{Name: m.Name, Value: m.Value, Alias: m.Alias}
		}

		return gen.RenderEnum(gen.Enum{Name: d.Name, Comment: d.Summary, Items: items})
	}

	vars := make([]gen.Var, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		vars[i] = gen.Var{Name: f.Name, Type: mapper.MapField(d.Name, f), Comment: f.Comment}
	}

	return gen.RenderBean(gen.Bean{
		Name:    d.Name,
		Parent:  parents.Parent(d),
		Comment: d.Summary,
		Vars:    vars,
	})
}
