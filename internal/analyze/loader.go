package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"regexp"
	"slices"
	"strconv"

	"golang.org/x/tools/go/packages"

	"schema-generator/internal/diagnostic"
	"schema-generator/primitive"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Options controls how declarations are extracted.
type Options struct {
	// ReservedPattern drops fields and enum members whose Go name matches
	// (internal bookkeeping).
	ReservedPattern *regexp.Regexp
	// TrimEnumPrefix removes the type name prefix from enum member names.
	TrimEnumPrefix bool
	// PolymorphicMarker is the name of the distinguished marker interface.
	PolymorphicMarker string
	// WrapperTypes are generic single-argument types that vanish in the schema.
	WrapperTypes []string
	// UnionTypes are generic types whose arguments are union alternatives.
	UnionTypes []string
	// PairTypes are generic key/value types; a slice of them is a dictionary.
	PairTypes []string
}

// DefaultOptions returns the options matching the markers of package schema.
func DefaultOptions() Options {
	return Options{
		ReservedPattern:   regexp.MustCompile(`^XXX_`),
		TrimEnumPrefix:    true,
		PolymorphicMarker: "Variant",
		WrapperTypes:      []string{"Readonly", "Lazy"},
		UnionTypes:        []string{"OneOf2", "OneOf3", "OneOf4"},
		PairTypes:         []string{"Pair"},
	}
}

// Analyzer loads Go packages and extracts their declarations.
type Analyzer struct {
	opts    Options
	fset    *token.FileSet
	pkgs    map[string]*packages.Package // by package path, in load order below
	order   []string
	decls   []*Declaration
	byID    map[TypeID]*Declaration
	sources map[string][]byte
	diags   diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{
		opts:    opts,
		fset:    token.NewFileSet(),
		pkgs:    make(map[string]*packages.Package),
		byID:    make(map[TypeID]*Declaration),
		sources: make(map[string][]byte),
	}
}

// Load loads the packages matching patterns, resolved relative to dir, and
// extracts their declarations. Packages already loaded are skipped.
// It returns the package paths that matched.
func (a *Analyzer) Load(dir string, patterns ...string) ([]string, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
		Fset: a.fset,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	paths := make([]string, 0, len(pkgs))

	for _, pkg := range pkgs {
		paths = append(paths, pkg.PkgPath)

		if _, seen := a.pkgs[pkg.PkgPath]; seen {
			continue
		}

		a.pkgs[pkg.PkgPath] = pkg
		a.order = append(a.order, pkg.PkgPath)
		a.processPackage(pkg)
	}

	return paths, nil
}

// reserved reports whether a Go name is internal bookkeeping.
func (a *Analyzer) reserved(goName string) bool {
	return a.opts.ReservedPattern != nil && a.opts.ReservedPattern.MatchString(goName)
}

// Loaded returns true if the package has been loaded.
func (a *Analyzer) Loaded(pkgPath string) bool {
	_, ok := a.pkgs[pkgPath]
	return ok
}

// Declarations returns every extracted declaration in load order.
func (a *Analyzer) Declarations() []*Declaration {
	return a.decls
}

// Declaration returns the extracted declaration with the given identity.
func (a *Analyzer) Declaration(id TypeID) *Declaration {
	return a.byID[id]
}

// Diagnostics returns the warnings collected during extraction.
func (a *Analyzer) Diagnostics() diagnostic.Diagnostics {
	return a.diags
}

// processPackage extracts declarations in source order, skipping generated files.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	consts := a.collectConsts(pkg)
	methods := a.collectMethods(pkg)

	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				a.processTypeSpec(pkg, gd, ts, consts, methods)
			}
		}
	}
}

func (a *Analyzer) processTypeSpec(
	pkg *packages.Package,
	gd *ast.GenDecl,
	ts *ast.TypeSpec,
	consts map[*types.TypeName][]constEntry,
	methods map[string][]span,
) {
	// Aliases and generic declarations have no schema entry of their own.
	if !ts.Name.IsExported() || ts.Assign.IsValid() || ts.TypeParams != nil {
		return
	}

	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}

	doc := ts.Doc
	if doc == nil && len(gd.Specs) == 1 {
		doc = gd.Doc
	}

	info := parseDoc(doc)
	if info.Ignore {
		return
	}

	decl := &Declaration{
		ID:      TypeID{PkgPath: pkg.PkgPath, Name: obj.Name()},
		Name:    obj.Name(),
		Summary: info.Summary,
		Pos:     a.fset.Position(ts.Pos()),
		obj:     obj,
	}

	start, end := ts.Pos(), ts.End()
	if doc != nil {
		start = doc.Pos()
	}
	if ts.Comment != nil {
		end = ts.Comment.End()
	}

	decl.spans = append(decl.spans, a.spanOf(start, end))
	decl.spans = append(decl.spans, methods[obj.Name()]...)

	switch u := named.Underlying().(type) {
	case *types.Struct:
		decl.Kind = DeclKindRecord
		node, _ := ts.Type.(*ast.StructType)
		a.extractFields(decl, u, node, info)

	case *types.Interface:
		decl.Kind = DeclKindRecord
		decl.IsInterface = true

	case *types.Basic:
		members := consts[obj]
		if len(members) > 0 && u.Info()&(types.IsInteger|types.IsString) != 0 {
			decl.Kind = DeclKindEnum
			a.extractMembers(decl, members)
		} else {
			decl.Kind = DeclKindIgnored
			decl.Underlying = a.typeExpr(u)
		}

	default:
		// Named slices, maps and the like resolve through their underlying type.
		decl.Kind = DeclKindIgnored
		decl.Underlying = a.typeExpr(u)
	}

	a.decls = append(a.decls, decl)
	a.byID[decl.ID] = decl
}

// extractFields extracts exported, non-reserved, non-excluded fields.
// node may be nil when the struct is declared through another named type.
func (a *Analyzer) extractFields(decl *Declaration, st *types.Struct, node *ast.StructType, info docInfo) {
	// One AST field may declare several names; line them up with types fields.
	var astFields []*ast.Field
	if node != nil {
		for _, f := range node.Fields.List {
			n := len(f.Names)
			if n == 0 {
				n = 1
			}

			for range n {
				astFields = append(astFields, f)
			}
		}
	}

	seen := make(map[string]bool)

	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)

		if !v.Exported() {
			continue
		}

		if a.reserved(v.Name()) {
			continue
		}

		var fdoc docInfo
		if i < len(astFields) {
			fdoc = parseDoc(astFields[i].Doc, astFields[i].Comment)
		}

		if fdoc.Ignore {
			continue
		}

		tag := reflect.StructTag(st.Tag(i))
		ft := parseFieldTag(tag)

		jsonName, omitEmpty := jsonTag(tag)
		if ft.Skip || jsonName == "-" {
			continue
		}

		field := Field{
			Name:     fieldName(v.Name(), tag, ft),
			GoName:   v.Name(),
			Optional: ft.Optional || omitEmpty,
			Tags:     ft.Validators,
			Embedded: v.Embedded(),
		}

		t := types.Unalias(v.Type())
		if ptr, ok := t.(*types.Pointer); ok {
			field.Optional = true
			t = ptr.Elem()
		}

		field.Type = a.typeExpr(t)

		if field.Type.IsFixed() {
			if _, ok := field.Tag(TagSize); !ok {
				field.Tags = append(field.Tags, Tag{Key: TagSize, Value: strconv.FormatInt(field.Type.Len, 10)})
			}
		}

		if ft.HasConst {
			field.Type = LiteralOf(ft.Const)
		}

		field.Comment = fdoc.Text
		if field.Comment == "" {
			field.Comment = info.Params[v.Name()]
		}

		if seen[field.Name] {
			a.diags.AddWarning(diagnostic.CodeDuplicateField,
				fmt.Sprintf("field %s reuses schema name %q and is skipped", v.Name(), field.Name),
				decl.Name, field.Name)

			continue
		}

		seen[field.Name] = true
		decl.Fields = append(decl.Fields, field)
	}
}

// typeExpr converts a go/types type into a TypeExpr.
func (a *Analyzer) typeExpr(t types.Type) *TypeExpr {
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.Basic:
		if k := primitive.FromBasic(tt); k.IsValid() {
			return Prim(k)
		}

		return UnknownType(tt.Name())

	case *types.Pointer:
		return a.typeExpr(tt.Elem())

	case *types.Slice:
		if key, value, ok := a.pairArgs(tt.Elem()); ok {
			return DictionaryOf(a.typeExpr(key), a.typeExpr(value))
		}

		return SequenceOf(a.typeExpr(tt.Elem()))

	case *types.Array:
		return ArrayOf(a.typeExpr(tt.Elem()), tt.Len())

	case *types.Map:
		return DictionaryOf(a.typeExpr(tt.Key()), a.typeExpr(tt.Elem()))

	case *types.Named:
		return a.namedExpr(tt)

	default:
		// Channels, functions, anonymous structs and interfaces, type parameters.
		return UnknownType(types.TypeString(t, qualifier))
	}
}

// namedExpr handles named types: marker generics are recognised by the name
// of their origin, everything else becomes a reference.
func (a *Analyzer) namedExpr(n *types.Named) *TypeExpr {
	obj := n.Obj()
	if obj.Pkg() == nil {
		// Universe types such as error and comparable.
		return UnknownType(obj.Name())
	}

	if args := n.TypeArgs(); args != nil && args.Len() > 0 {
		switch {
		case slices.Contains(a.opts.WrapperTypes, obj.Name()) && args.Len() == 1:
			return Unwrapped(a.typeExpr(args.At(0)))

		case slices.Contains(a.opts.UnionTypes, obj.Name()):
			alts := make([]*TypeExpr, args.Len())
			for i := range args.Len() {
				alts[i] = a.typeExpr(args.At(i))
			}

			return UnionOf(alts...)
		}

		return UnknownType(types.TypeString(n, qualifier))
	}

	return RefTo(TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()})
}

// pairArgs returns the key and value arguments when t is an instantiated pair type.
func (a *Analyzer) pairArgs(t types.Type) (key, value types.Type, ok bool) {
	t = types.Unalias(t)
	if ptr, isPtr := t.(*types.Pointer); isPtr {
		t = types.Unalias(ptr.Elem())
	}

	n, isNamed := t.(*types.Named)
	if !isNamed || !slices.Contains(a.opts.PairTypes, n.Obj().Name()) {
		return nil, nil, false
	}

	args := n.TypeArgs()
	if args == nil || args.Len() != 2 {
		return nil, nil, false
	}

	return args.At(0), args.At(1), true
}

// qualifier renders package-qualified names with the package name only.
func qualifier(p *types.Package) string {
	return p.Name()
}
