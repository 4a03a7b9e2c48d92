package analyze

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"
)

// constEntry is an exported constant of a named package-local type.
type constEntry struct {
	obj  *types.Const
	doc  docInfo
	span span
}

// collectConsts groups the exported constants of pkg by their named type,
// in source order.
func (a *Analyzer) collectConsts(pkg *packages.Package) map[*types.TypeName][]constEntry {
	out := make(map[*types.TypeName][]constEntry)

	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}

			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}

				doc := vs.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				start, end := vs.Pos(), vs.End()
				if doc != nil {
					start = doc.Pos()
				}
				if vs.Comment != nil {
					end = vs.Comment.End()
				}

				info := parseDoc(doc, vs.Comment)

				for _, name := range vs.Names {
					if name.Name == "_" || !name.IsExported() {
						continue
					}

					c, ok := pkg.TypesInfo.Defs[name].(*types.Const)
					if !ok {
						continue
					}

					named, ok := c.Type().(*types.Named)
					if !ok || named.Obj().Pkg() != pkg.Types {
						continue
					}

					out[named.Obj()] = append(out[named.Obj()], constEntry{
						obj:  c,
						doc:  info,
						span: a.spanOf(start, end),
					})
				}
			}
		}
	}

	return out
}

// collectMethods returns the spans of method signatures keyed by receiver
// type name. Bodies are left out: they do not affect the schema.
func (a *Analyzer) collectMethods(pkg *packages.Package) map[string][]span {
	out := make(map[string][]span)

	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}

		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
				continue
			}

			recv := receiverName(fd.Recv.List[0].Type)
			if recv == "" {
				continue
			}

			start := fd.Pos()
			if fd.Doc != nil {
				start = fd.Doc.Pos()
			}

			out[recv] = append(out[recv], a.spanOf(start, fd.Type.End()))
		}
	}

	return out
}

// receiverName unwraps *T, T[P] and (T) down to the type name.
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.Ident:
			return e.Name
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		default:
			return ""
		}
	}
}

// extractMembers fills the enum members and adds their spans to the hash input.
func (a *Analyzer) extractMembers(decl *Declaration, entries []constEntry) {
	var last span

	for _, e := range entries {
		if e.doc.Ignore || a.reserved(e.obj.Name()) {
			continue
		}

		decl.Members = append(decl.Members, Member{
			Name:    a.memberName(decl.Name, e.obj.Name()),
			GoName:  e.obj.Name(),
			Value:   literal(e.obj.Val()),
			Alias:   e.doc.Alias,
			Comment: e.doc.Text,
		})

		// Names declared in one spec share it; hash it once.
		if e.span != last {
			decl.spans = append(decl.spans, e.span)
			last = e.span
		}
	}
}

// memberName trims the type name prefix (QualityEpic -> Epic) when the
// remainder still reads as an exported identifier.
func (a *Analyzer) memberName(typeName, goName string) string {
	if !a.opts.TrimEnumPrefix {
		return goName
	}

	rest, ok := strings.CutPrefix(goName, typeName)
	if !ok || rest == "" {
		return goName
	}

	// "Tier2" would leave "2", which is not an identifier.
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) {
		return goName
	}

	return rest
}

// literal renders a constant as a schema literal: strings quoted, integers bare.
func literal(v constant.Value) string {
	switch v.Kind() {
	case constant.String:
		return strconv.Quote(constant.StringVal(v))
	case constant.Int:
		return v.ExactString()
	default:
		return v.String()
	}
}
