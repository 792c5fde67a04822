package reify

import (
	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/schema"
)

// reifyObject implements decision-table step 7. Each property becomes a
// Field; required properties keep their bare type, non-required ones are
// wrapped in Optional unless a default is present (per Field's invariant
// in spec.md §4.E); additionalProperties: false makes the decoder reject
// extra keys, and any other form (true, absent, or a schema) captures them
// untyped into a mapping field. A schema-valued additionalProperties is
// not reified and is not applied to the captured values.
func reifyObject(s *schema.Schema, name string, parents []string, opts Options, path string) (codemodel.CodeDecl, error) {
	childParents := append(append([]string{}, parents...), name)
	required := s.RequiredSet()

	var fields []codemodel.Field
	var nested []codemodel.CodeDecl
	fieldScope := newScope()

	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			propKey := pair.Key
			propSchema := pair.Value

			decl, err := reifyAt(propSchema, propKey, childParents, opts, path+"/properties/"+propKey)
			if err != nil {
				return codemodel.CodeDecl{}, err
			}

			var ftype codemodel.CodeType
			switch decl.Kind() {
			case codemodel.DeclAlias:
				ftype = decl.Target
			default:
				ftype = codemodel.Named(decl.Name)
				nested = append(nested, decl)
			}
			ftype = wrapIfRecursive(name, ftype, s.Properties.Len(), opts.IndirectCountThreshold)
			// A "#" reference names the outermost declaration; wrapping it
			// also breaks cycles that run back to the root through nested
			// inline objects.
			if named, ok := ftype.AsNamed(); ok && named == rootName(parents, name) {
				ftype = codemodel.IndirectOf(ftype)
			}

			isRequired := required[propKey]
			var defaultLiteral *string
			if propSchema.Default != nil {
				text, _ := bric.Encode(*propSchema.Default)
				s := string(text)
				defaultLiteral = &s
			}
			if !isRequired && defaultLiteral == nil {
				ftype = codemodel.OptionalOf(ftype)
			}

			fields = append(fields, codemodel.Field{
				Name:     fieldScope.allocate(fieldName(propKey, opts.KeywordsToAvoid)),
				JSONName: propKey,
				Type:     ftype,
				Required: isRequired,
				Default:  defaultLiteral,
			})
		}
	}

	conformances := map[string]bool{}
	if opts.GenerateEquals {
		conformances["Equatable"] = true
	}

	switch {
	case s.AdditionalProperties.Forbidden():
		conformances["RejectAdditionalProperties"] = true
	case s.AdditionalProperties.Typed():
		// CodeType has no map-of-T shape, so a typed open mapping is
		// captured exactly like the default case: extras stay Bric, and
		// the value schema is neither reified nor checked against them.
		fields = append(fields, codemodel.Field{
			Name:     fieldScope.allocate("AdditionalProperties"),
			JSONName: "",
			Type:     codemodel.MapOfBric(),
			Required: false,
		})
	default:
		fields = append(fields, codemodel.Field{
			Name:     fieldScope.allocate("AdditionalProperties"),
			JSONName: "",
			Type:     codemodel.MapOfBric(),
			Required: false,
		})
	}

	return codemodel.NewStruct(name, s.Description, opts.Accessor(childParents), fields, nested, conformances), nil
}
