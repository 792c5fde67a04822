package reify

import (
	"strconv"

	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/schema"
)

// Reify is the recursive schema → declaration transformation, per
// spec.md §4.F. id is the suggested name for this schema; parents is the
// stack of enclosing declaration names — by convention parents[0], once
// non-empty, is always the resolved name of the outermost declaration in
// the current reification, which is how step 1 below resolves a bare "#"
// self-reference without needing a separate root-name parameter.
func Reify(s *schema.Schema, id string, parents []string, opts Options) (codemodel.CodeDecl, error) {
	return reifyAt(s, id, parents, opts, "#")
}

func rootName(parents []string, fallback string) string {
	if len(parents) > 0 {
		return parents[0]
	}
	return fallback
}

func reifyAt(s *schema.Schema, id string, parents []string, opts Options, path string) (codemodel.CodeDecl, error) {
	sc := newScope()
	name := resolveName(opts, parents, id, sc, path)

	// Step 1: ref = "#" → alias to the outermost schema name.
	if s.Ref == "#" {
		return codemodel.NewAlias(name, codemodel.Named(rootName(parents, name))), nil
	}
	if s.Ref != "" {
		return codemodel.CodeDecl{}, newError(path, UnresolvedRef, "unresolved $ref %q (only \"#\" self-references are resolved)", s.Ref)
	}

	// Step 2: enum present and every literal shares a primitive kind.
	if len(s.Enum) > 0 {
		return reifyEnum(s, name, path)
	}

	// Step 3: oneOf.
	if len(s.OneOf) > 0 {
		return reifyChoice(s.OneOf, name, parents, opts, path, "oneOf", true)
	}

	// Step 4: anyOf.
	if len(s.AnyOf) > 0 {
		return reifyChoice(s.AnyOf, name, parents, opts, path, "anyOf", false)
	}

	// Step 5: allOf.
	if len(s.AllOf) > 0 {
		return reifyAllOf(s, name, parents, opts, path)
	}

	// Step 6: not, alongside (or instead of) object fields.
	if s.Not != nil {
		return reifyNot(s, name, parents, opts, path)
	}

	// Step 7: object-shaped.
	if s.Type.Has(schema.TypeObject) || (s.Properties != nil && len(s.Type) == 0) {
		return reifyObject(s, name, parents, opts, path)
	}

	// Step 8: array-shaped.
	if s.Type.Has(schema.TypeArray) {
		return reifyArray(s, name, parents, opts, path)
	}

	// Step 9: a single other primitive type.
	if len(s.Type) > 0 {
		return codemodel.NewAlias(name, codemodel.PrimitiveType(primitiveFor(s.Type[0]))), nil
	}

	// Step 10: no type information at all.
	return codemodel.NewAlias(name, codemodel.PrimitiveType(codemodel.PrimitiveBric)), nil
}

func primitiveFor(t string) codemodel.Primitive {
	switch t {
	case schema.TypeBoolean:
		return codemodel.PrimitiveBool
	case schema.TypeInteger:
		return codemodel.PrimitiveInt
	case schema.TypeNumber:
		return codemodel.PrimitiveDouble
	case schema.TypeString:
		return codemodel.PrimitiveString
	case schema.TypeNull:
		return codemodel.PrimitiveNull
	default:
		return codemodel.PrimitiveBric
	}
}

func reifyEnum(s *schema.Schema, name string, path string) (codemodel.CodeDecl, error) {
	kind := s.Enum[0].Kind()
	for _, v := range s.Enum[1:] {
		if v.Kind() != kind {
			return codemodel.CodeDecl{}, newError(path, MixedEnumKinds, "enum literals mix %s and %s", kind, v.Kind())
		}
	}

	raw := primitiveForBricKind(kind)
	sc := newScope()
	cases := make([]codemodel.EnumCase, len(s.Enum))
	for i, v := range s.Enum {
		caseName := sc.allocate(literalCaseName(v, i))
		text, _ := bric.Encode(v)
		cases[i] = codemodel.EnumCase{Name: caseName, Literal: string(text)}
	}
	return codemodel.NewEnum(name, raw, cases), nil
}

func primitiveForBricKind(k bric.Kind) codemodel.Primitive {
	switch k {
	case bric.KindBool:
		return codemodel.PrimitiveBool
	case bric.KindNum:
		return codemodel.PrimitiveDouble
	case bric.KindStr:
		return codemodel.PrimitiveString
	case bric.KindNull:
		return codemodel.PrimitiveNull
	default:
		return codemodel.PrimitiveBric
	}
}

func literalCaseName(v bric.Bric, index int) string {
	switch v.Kind() {
	case bric.KindStr:
		s, _ := v.AsStr()
		if s == "" {
			return "case_" + strconv.Itoa(index)
		}
		return sanitize(s, nil, "")
	case bric.KindBool:
		b, _ := v.AsBool()
		if b {
			return "True"
		}
		return "False"
	case bric.KindNum:
		n, _ := v.AsNum()
		return sanitize(strconv.FormatFloat(n, 'g', -1, 64), nil, "")
	case bric.KindNull:
		return "Null"
	default:
		return "case_" + strconv.Itoa(index)
	}
}
