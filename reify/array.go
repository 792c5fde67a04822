package reify

import (
	"strconv"

	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/schema"
)

// reifyArray implements decision-table step 8: a single items schema
// becomes an Alias to Array(T); a tuple of items schemas becomes an
// Alias to Tuple(T1,...,Tn). An items schema that itself reifies to a
// Struct/Sum/Enum (an inline object, not a primitive or self-reference)
// is carried along as a nested declaration on the alias.
func reifyArray(s *schema.Schema, name string, parents []string, opts Options, path string) (codemodel.CodeDecl, error) {
	childParents := append(append([]string{}, parents...), name)

	if s.Items == nil {
		return codemodel.NewAlias(name, codemodel.ArrayOf(codemodel.PrimitiveType(codemodel.PrimitiveBric))), nil
	}

	if len(s.Items.Tuple) > 0 {
		elems := make([]codemodel.CodeType, len(s.Items.Tuple))
		var nested []codemodel.CodeDecl
		for i, sub := range s.Items.Tuple {
			decl, err := reifyAt(sub, "Elem"+strconv.Itoa(i+1), childParents, opts, path+"/items/"+strconv.Itoa(i))
			if err != nil {
				return codemodel.CodeDecl{}, err
			}
			t, n := elemTypeAndNested(decl)
			elems[i] = t
			nested = append(nested, n...)
		}
		alias := codemodel.NewAlias(name, codemodel.TupleOf(elems...))
		alias.Nested = nested
		return alias, nil
	}

	decl, err := reifyAt(s.Items.Single, name+"Elem", childParents, opts, path+"/items")
	if err != nil {
		return codemodel.CodeDecl{}, err
	}
	t, nested := elemTypeAndNested(decl)
	alias := codemodel.NewAlias(name, codemodel.ArrayOf(t))
	alias.Nested = nested
	return alias, nil
}

// elemTypeAndNested extracts the CodeType an already-reified declaration
// stands for, plus the declaration itself when it needs to surface as a
// nested declaration rather than being inlined (an Alias's target always
// inlines; anything else needs a name to refer to it by).
func elemTypeAndNested(d codemodel.CodeDecl) (codemodel.CodeType, []codemodel.CodeDecl) {
	if d.Kind() == codemodel.DeclAlias {
		return d.Target, d.Nested
	}
	return codemodel.Named(d.Name), []codemodel.CodeDecl{d}
}
