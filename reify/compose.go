package reify

import (
	"fmt"
	"strconv"

	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/schema"
)

// reifyChoice implements decision-table steps 3 (oneOf, exclusive) and 4
// (anyOf, non-exclusive): a Sum whose cases are each recursively reified
// under a child name — the branch's own title if present, else
// "Choice<i>" (1-indexed, matching how the rest of the package numbers
// things for humans reading generated names).
func reifyChoice(branches []*schema.Schema, name string, parents []string, opts Options, path, keyword string, exclusive bool) (codemodel.CodeDecl, error) {
	if len(branches) == 0 {
		return codemodel.CodeDecl{}, newError(path, EmptyComposition, "%s must be a non-empty array", keyword)
	}

	childParents := append(append([]string{}, parents...), name)
	caseScope := newScope()

	var nested []codemodel.CodeDecl
	cases := make([]codemodel.SumCase, 0, len(branches))
	for i, branch := range branches {
		childID := branch.Title
		if childID == "" {
			childID = "Choice" + strconv.Itoa(i+1)
		}
		branchPath := fmt.Sprintf("%s/%s/%d", path, keyword, i)

		decl, err := reifyAt(branch, childID, childParents, opts, branchPath)
		if err != nil {
			return codemodel.CodeDecl{}, err
		}

		var payload codemodel.CodeType
		switch decl.Kind() {
		case codemodel.DeclAlias:
			payload = decl.Target
		default:
			payload = codemodel.Named(decl.Name)
			payload = wrapIfRecursive(name, payload, 0, opts.IndirectCountThreshold)
			nested = append(nested, decl)
		}

		caseName := caseScope.allocate(sanitize(childID, opts.KeywordsToAvoid, branchPath))
		cases = append(cases, codemodel.SumCase{Name: caseName, Payload: &payload})
	}

	conformances := map[string]bool{}
	if opts.GenerateEquals {
		conformances["Equatable"] = true
	}
	decl := codemodel.NewSum(name, "", opts.Accessor(childParents), cases, nested, conformances)
	decl.Exclusive = exclusive
	return decl, nil
}

// reifyAllOf implements decision-table step 5: a Struct whose fields are
// the concatenation of fields contributed by each sub-schema, in order.
// A schema that mixes its own properties with allOf (rather than allOf
// alone) is treated as an implicit leading branch — schema.IsComposedOnly
// is the test that tells the two apart.
func reifyAllOf(s *schema.Schema, name string, parents []string, opts Options, path string) (codemodel.CodeDecl, error) {
	members := make([]*schema.Schema, 0, len(s.AllOf)+1)
	if !s.IsComposedOnly() {
		own := *s
		own.AllOf = nil
		members = append(members, &own)
	}
	members = append(members, s.AllOf...)

	childParents := append(append([]string{}, parents...), name)

	var fields []codemodel.Field
	var nested []codemodel.CodeDecl
	seen := map[string]codemodel.CodeType{}

	for i, member := range members {
		branchPath := fmt.Sprintf("%s/allOf/%d", path, i)
		decl, err := reifyAt(member, name+"_AllOf"+strconv.Itoa(i+1), childParents, opts, branchPath)
		if err != nil {
			return codemodel.CodeDecl{}, err
		}
		if decl.Kind() != codemodel.DeclStruct {
			return codemodel.CodeDecl{}, newError(branchPath, AmbiguousAllOf, "allOf branch %d does not reify to an object and cannot be merged", i)
		}
		for _, f := range decl.Fields {
			if prior, ok := seen[f.Name]; ok {
				if !codeTypeEqual(prior, f.Type) {
					return codemodel.CodeDecl{}, newError(branchPath, AmbiguousAllOf, "field %q has conflicting types across allOf branches", f.Name)
				}
				continue
			}
			seen[f.Name] = f.Type
			fields = append(fields, f)
		}
		nested = append(nested, decl.Nested...)
	}

	conformances := map[string]bool{}
	if opts.GenerateEquals {
		conformances["Equatable"] = true
	}
	return codemodel.NewStruct(name, "", opts.Accessor(childParents), fields, nested, conformances), nil
}

// reifyNot implements decision-table step 6: the positive schema (this
// schema with "not" stripped) reifies normally, then the negative
// sub-schema is reified as a hidden nested declaration the decoder must
// fail to match against.
func reifyNot(s *schema.Schema, name string, parents []string, opts Options, path string) (codemodel.CodeDecl, error) {
	positive := *s
	positive.Not = nil
	posDecl, err := reifyAt(&positive, name, parents, opts, path)
	if err != nil {
		return codemodel.CodeDecl{}, err
	}
	posDecl = asStruct(posDecl, opts)

	childParents := append(append([]string{}, parents...), name)
	negDecl, err := reifyAt(s.Not, name+"Negative", childParents, opts, path+"/not")
	if err != nil {
		return codemodel.CodeDecl{}, err
	}

	posDecl.Nested = append(posDecl.Nested, negDecl)
	posDecl.AssertNotType = negDecl.Name
	if posDecl.Conformances == nil {
		posDecl.Conformances = map[string]bool{}
	}
	posDecl.Conformances["AssertNot"] = true
	return posDecl, nil
}

// asStruct wraps a non-Struct declaration in a struct of the same name
// with a single field named "Value", so step 6's "wrapper struct carrying the positive schema's
// fields" has a field list even when the positive schema itself isn't
// object-shaped (e.g. `{"type": "string", "not": {"const": "admin"}}`).
func asStruct(d codemodel.CodeDecl, opts Options) codemodel.CodeDecl {
	if d.Kind() == codemodel.DeclStruct {
		return d
	}
	var t codemodel.CodeType
	switch d.Kind() {
	case codemodel.DeclAlias:
		t = d.Target
	default:
		t = codemodel.Named(d.Name)
	}
	field := codemodel.Field{Name: "Value", JSONName: "", Type: t, Required: true}
	conformances := map[string]bool{}
	if opts.GenerateEquals {
		conformances["Equatable"] = true
	}
	var nested []codemodel.CodeDecl
	if d.Kind() != codemodel.DeclAlias {
		nested = []codemodel.CodeDecl{d}
	}
	return codemodel.NewStruct(d.Name, d.Doc, d.Access, []codemodel.Field{field}, nested, conformances)
}

func codeTypeEqual(a, b codemodel.CodeType) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case codemodel.CodeTypePrimitive:
		ap, _ := a.AsPrimitive()
		bp, _ := b.AsPrimitive()
		return ap == bp
	case codemodel.CodeTypeNamed:
		an, _ := a.AsNamed()
		bn, _ := b.AsNamed()
		return an == bn
	case codemodel.CodeTypeArray, codemodel.CodeTypeOptional, codemodel.CodeTypeIndirect:
		ae, _ := a.Elem()
		be, _ := b.Elem()
		return codeTypeEqual(ae, be)
	case codemodel.CodeTypeTuple:
		at, _ := a.Tuple()
		bt, _ := b.Tuple()
		if len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !codeTypeEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	case codemodel.CodeTypeMap:
		return true
	default:
		return false
	}
}
