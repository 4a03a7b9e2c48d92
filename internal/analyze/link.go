package analyze

import (
	"fmt"
	"go/types"

	"schema-generator/internal/diagnostic"
)

// Link builds the declaration set of one run from decls and resolves what
// depends on the whole set: explicit bases, implemented interfaces, interface
// embedding, the polymorphic tag and content hashes.
func (a *Analyzer) Link(decls []*Declaration) (*DeclarationSet, error) {
	set := NewDeclarationSet(decls...)

	var marker *types.Interface
	if obj := a.findMarker(decls); obj != nil {
		set.Marker = TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
		marker, _ = obj.Type().Underlying().(*types.Interface)

		// The marker itself is a tag, never a bean.
		if d := set.Lookup(set.Marker); d != nil {
			d.Kind = DeclKindIgnored
			d.Polymorphic = true
		}
	}

	ifaces := interfaceDecls(set)

	for _, d := range set.All() {
		if !d.IsRecord() || d.obj == nil {
			continue
		}

		if d.IsInterface {
			d.Embeds = embeddedDecls(d, set)
		} else {
			// Linking again keeps the base already split off the fields.
			if d.Base == "" {
				d.Base = baseOf(d, set)
			}
			d.Interfaces = names(implemented(d, ifaces))
		}

		if marker != nil {
			d.Polymorphic = satisfies(d.obj.Type(), marker)
		}
	}

	seen := make(map[string]*Declaration)

	for _, d := range set.Emitted() {
		if prev, ok := seen[d.Name]; ok {
			a.diags.AddError(diagnostic.CodeDuplicateDeclaration,
				fmt.Sprintf("schema name %q is declared by both %s and %s", d.Name, prev.ID, d.ID),
				d.Name, "")

			continue
		}

		seen[d.Name] = d

		if d.spans == nil {
			continue
		}

		hash, err := a.contentHash(d.Name, d.spans)
		if err != nil {
			return nil, fmt.Errorf("hashing %s: %w", d.ID, err)
		}

		d.Hash = hash
	}

	return set, nil
}

// findMarker looks the marker interface up among decls, then among the
// packages imported by the loaded ones.
func (a *Analyzer) findMarker(decls []*Declaration) *types.TypeName {
	name := a.opts.PolymorphicMarker
	if name == "" {
		return nil
	}

	for _, d := range decls {
		if d.Name == name && d.IsInterface && d.obj != nil {
			return d.obj
		}
	}

	for _, path := range a.order {
		pkg := a.pkgs[path]
		if pkg.Types == nil {
			continue
		}

		for _, imp := range pkg.Types.Imports() {
			obj, ok := imp.Scope().Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}

			if _, isIface := obj.Type().Underlying().(*types.Interface); isIface {
				return obj
			}
		}
	}

	return nil
}

// interfaceDecls returns the interface records that can be implemented:
// the marker and empty interfaces are left out.
func interfaceDecls(set *DeclarationSet) []*Declaration {
	var out []*Declaration

	for _, d := range set.All() {
		if !d.IsRecord() || !d.IsInterface || d.obj == nil || set.IsMarker(d.ID) {
			continue
		}

		if iface := underlyingInterface(d); iface == nil || iface.NumMethods() == 0 {
			continue
		}

		out = append(out, d)
	}

	return out
}

// implemented returns the most specific interfaces of candidates that the
// struct declaration d satisfies, in candidate order.
func implemented(d *Declaration, candidates []*Declaration) []*Declaration {
	var hits []*Declaration

	for _, c := range candidates {
		if satisfies(d.obj.Type(), underlyingInterface(c)) {
			hits = append(hits, c)
		}
	}

	// Drop interfaces already embedded by another hit.
	covered := make(map[TypeID]bool)

	for _, h := range hits {
		embeddedClosure(underlyingInterface(h), covered)
	}

	out := hits[:0]

	for _, h := range hits {
		if !covered[h.ID] {
			out = append(out, h)
		}
	}

	return out
}

// satisfies reports whether t or *t implements iface.
func satisfies(t types.Type, iface *types.Interface) bool {
	if iface == nil {
		return false
	}

	if types.Implements(t, iface) {
		return true
	}

	if _, isIface := t.Underlying().(*types.Interface); isIface {
		return false
	}

	return types.Implements(types.NewPointer(t), iface)
}

// embeddedClosure records every interface embedded by iface, transitively.
func embeddedClosure(iface *types.Interface, into map[TypeID]bool) {
	if iface == nil {
		return
	}

	for i := range iface.NumEmbeddeds() {
		named, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named)
		if !ok || named.Obj().Pkg() == nil {
			continue
		}

		id := TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()}
		if into[id] {
			continue
		}

		into[id] = true

		inner, _ := named.Underlying().(*types.Interface)
		embeddedClosure(inner, into)
	}
}

// embeddedDecls returns the schema names of the interface records directly
// embedded by the interface declaration d.
func embeddedDecls(d *Declaration, set *DeclarationSet) []string {
	iface := underlyingInterface(d)
	if iface == nil {
		return nil
	}

	var out []string

	for i := range iface.NumEmbeddeds() {
		named, ok := types.Unalias(iface.EmbeddedType(i)).(*types.Named)
		if !ok || named.Obj().Pkg() == nil {
			continue
		}

		id := TypeID{PkgPath: named.Obj().Pkg().Path(), Name: named.Obj().Name()}
		if set.IsMarker(id) {
			continue
		}

		if e := set.Lookup(id); e != nil && e.IsRecord() && e.IsInterface {
			out = append(out, e.Name)
		}
	}

	return out
}

// baseOf finds the first embedded field referring to a struct record of the
// set, removes it from d's fields and returns the base's schema name.
func baseOf(d *Declaration, set *DeclarationSet) string {
	for i, f := range d.Fields {
		if !f.Embedded || f.Type == nil || f.Type.Kind != TypeExprReference {
			continue
		}

		base := set.Lookup(f.Type.Ref)
		if base == nil || !base.IsRecord() || base.IsInterface {
			continue
		}

		d.Fields = append(d.Fields[:i:i], d.Fields[i+1:]...)

		return base.Name
	}

	return ""
}

func names(decls []*Declaration) []string {
	if len(decls) == 0 {
		return nil
	}

	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.Name
	}

	return out
}

func underlyingInterface(d *Declaration) *types.Interface {
	if d.obj == nil {
		return nil
	}

	iface, _ := d.obj.Type().Underlying().(*types.Interface)

	return iface
}
