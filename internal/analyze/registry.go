package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"schema-generator/internal/common"
	"schema-generator/internal/diagnostic"
)

// Registration is one Register[T]() or Register[pkg.T]("Name") call.
type Registration struct {
	ImportPath string // empty for types of the registration file's own package
	TypeName   string
	Rename     string // external schema name, optional
	Pos        token.Position
}

// String returns the registered type as written.
func (r Registration) String() string {
	if r.ImportPath == "" {
		return r.TypeName
	}

	return common.PkgAlias(r.ImportPath) + "." + r.TypeName
}

// registerFuncs are the call names recognised in a registration file.
var registerFuncs = map[string]bool{
	"Register": true,
	"register": true,
}

// ParseRegistrations reads the Register calls of a Go file, in source order.
//
//	func init() {
//		schema.Register[Monster]()
//		schema.Register[items.DropItem]("Drop")
//	}
func ParseRegistrations(file string) ([]Registration, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, file, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing registrations: %w", err)
	}

	imports := make(map[string]string, len(f.Imports))

	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: bad import path %s", fset.Position(imp.Pos()), imp.Path.Value)
		}

		name := common.PkgAlias(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}

		imports[name] = path
	}

	var (
		regs    []Registration
		walkErr error
	)

	ast.Inspect(f, func(n ast.Node) bool {
		if walkErr != nil {
			return false
		}

		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		idx, ok := call.Fun.(*ast.IndexExpr)
		if !ok || !isRegisterFunc(idx.X) {
			return true
		}

		reg, err := registration(idx.Index, call.Args, imports)
		if err != nil {
			walkErr = fmt.Errorf("%s: %w", fset.Position(call.Pos()), err)
			return false
		}

		reg.Pos = fset.Position(call.Pos())
		regs = append(regs, reg)

		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return regs, nil
}

func isRegisterFunc(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return registerFuncs[e.Name]
	case *ast.SelectorExpr:
		return registerFuncs[e.Sel.Name]
	default:
		return false
	}
}

func registration(typeArg ast.Expr, args []ast.Expr, imports map[string]string) (Registration, error) {
	var reg Registration

	switch t := typeArg.(type) {
	case *ast.Ident:
		reg.TypeName = t.Name

	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return reg, fmt.Errorf("unsupported type argument")
		}

		path, ok := imports[pkg.Name]
		if !ok {
			return reg, fmt.Errorf("package %s is not imported", pkg.Name)
		}

		reg.ImportPath = path
		reg.TypeName = t.Sel.Name

	default:
		return reg, fmt.Errorf("unsupported type argument")
	}

	switch len(args) {
	case 0:
	case 1:
		lit, ok := args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return reg, fmt.Errorf("registration name of %s must be a string literal", reg.TypeName)
		}

		name, err := strconv.Unquote(lit.Value)
		if err != nil {
			return reg, fmt.Errorf("bad registration name %s: %w", lit.Value, err)
		}

		reg.Rename = name

	default:
		return reg, fmt.Errorf("registration of %s takes at most one name", reg.TypeName)
	}

	return reg, nil
}

// ExtractRegistered loads the declarations registered in file, renamed as
// requested, followed by every declaration they reference transitively
// through fields, bases and implemented or embedded interfaces.
func (a *Analyzer) ExtractRegistered(file string, resolver Resolver) (*DeclarationSet, error) {
	regs, err := ParseRegistrations(file)
	if err != nil {
		return nil, err
	}

	r := &registry{
		a:        a,
		resolver: resolver,
		loaded:   make(map[Location][]string),
		included: make(map[TypeID]bool),
	}

	for _, reg := range regs {
		if err := r.register(reg); err != nil {
			return nil, fmt.Errorf("%s: %w", reg.Pos, err)
		}
	}

	r.closure()

	return a.Link(r.queue)
}

// registry holds the state of one registration-mode extraction.
type registry struct {
	a        *Analyzer
	resolver Resolver
	loaded   map[Location][]string
	included map[TypeID]bool
	queue    []*Declaration
}

func (r *registry) load(importPath string) ([]string, error) {
	loc, ok := r.resolver.Resolve(importPath)
	if !ok {
		return nil, fmt.Errorf("cannot resolve package %q", importPath)
	}

	if paths, ok := r.loaded[loc]; ok {
		return paths, nil
	}

	paths, err := r.a.Load(loc.Dir, loc.Pattern)
	if err != nil {
		return nil, fmt.Errorf("loading %s (%s): %w", loc.Pattern, loc.Strategy, err)
	}

	r.loaded[loc] = paths

	return paths, nil
}

func (r *registry) register(reg Registration) error {
	pkgPath := reg.ImportPath

	paths, err := r.load(reg.ImportPath)
	if err != nil {
		return err
	}

	if pkgPath == "" {
		p, ok := common.First(paths)
		if !ok {
			return fmt.Errorf("no package found for %s", reg)
		}

		pkgPath = p
	}

	id := TypeID{PkgPath: pkgPath, Name: reg.TypeName}

	d := r.a.Declaration(id)
	if d == nil {
		return fmt.Errorf("registered type %s not found", reg)
	}

	if r.included[id] {
		r.a.diags.AddWarning(diagnostic.CodeDuplicateRegistration,
			fmt.Sprintf("%s is registered more than once; the first registration wins", reg),
			d.Name, "")

		return nil
	}

	if reg.Rename != "" {
		d.Name = reg.Rename
	}

	r.include(d)

	return nil
}

func (r *registry) include(d *Declaration) {
	r.included[d.ID] = true
	r.queue = append(r.queue, d)
}

// closure appends referenced declarations breadth first, loading their
// packages on demand. Packages that cannot be loaded leave their types
// unresolved; the mapper reports them.
func (r *registry) closure() {
	for i := 0; i < len(r.queue); i++ {
		for _, id := range r.references(r.queue[i]) {
			if r.included[id] {
				continue
			}

			d := r.a.Declaration(id)
			if d == nil && !r.a.Loaded(id.PkgPath) && r.loadable(id.PkgPath) {
				if _, err := r.load(id.PkgPath); err != nil {
					r.a.diags.AddWarning(diagnostic.CodeUnresolvedPackage, err.Error(), r.queue[i].Name, "")
					continue
				}

				d = r.a.Declaration(id)
			}

			if d == nil {
				continue
			}

			r.include(d)
		}
	}
}

// loadable reports whether a referenced package should be loaded on demand.
// Standard library packages never hold schema declarations.
func (r *registry) loadable(importPath string) bool {
	loc, ok := r.resolver.Resolve(importPath)
	if !ok {
		return false
	}

	return loc.Strategy != StrategyPackage || !isStdlib(importPath)
}

// references lists the declarations d depends on, in field order, then
// implemented interfaces.
func (r *registry) references(d *Declaration) []TypeID {
	var ids []TypeID

	for _, f := range d.Fields {
		ids = f.Type.appendRefs(ids)
	}

	ids = d.Underlying.appendRefs(ids)

	if d.obj == nil || d.IsEnum() {
		return ids
	}

	if d.IsInterface {
		covered := make(map[TypeID]bool)
		embeddedClosure(underlyingInterface(d), covered)

		for _, e := range r.a.decls {
			if covered[e.ID] {
				ids = append(ids, e.ID)
			}
		}

		return ids
	}

	var candidates []*Declaration

	for _, c := range r.a.decls {
		if c.IsRecord() && c.IsInterface && c.obj != nil && c.ID.Name != r.a.opts.PolymorphicMarker {
			if iface := underlyingInterface(c); iface != nil && iface.NumMethods() > 0 {
				candidates = append(candidates, c)
			}
		}
	}

	for _, c := range implemented(d, candidates) {
		ids = append(ids, c.ID)
	}

	return ids
}

// isStdlib reports whether an import path looks like a standard library one.
// Module-local paths without a dot are resolved by the alias strategy first.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
