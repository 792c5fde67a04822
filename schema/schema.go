// Package schema implements the typed, decoded representation of a JSON
// Schema document used by the reifier (component D of spec.md §2/§4.D).
package schema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kaptinlin/bricolage/bric"
)

// Type is a scalar-or-array of JSON Schema primitive type names, always
// represented as a slice (a lone "string" becomes a one-element slice).
type Type []string

// Has reports whether t names the given primitive type.
func (t Type) Has(name string) bool {
	for _, n := range t {
		if n == name {
			return true
		}
	}
	return false
}

// Known primitive type names understood by the reifier.
const (
	TypeNull    = "null"
	TypeBoolean = "bool"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
)

// PropertyMap is the insertion-order-preserving mapping of property name to
// sub-schema used for both "properties" and "$defs"/"definitions".
type PropertyMap = orderedmap.OrderedMap[string, *Schema]

// NewPropertyMap returns an empty, insertion-order-preserving map.
func NewPropertyMap() *PropertyMap { return orderedmap.New[string, *Schema]() }

// AdditionalProperties captures the three legal shapes of the
// "additionalProperties" keyword: absent, a boolean, or a schema.
type AdditionalProperties struct {
	Bool   *bool
	Schema *Schema
}

// Allowed reports whether additional properties are permitted at all absent
// any further constraint (true, or no constraint present).
func (a *AdditionalProperties) Allowed() bool {
	if a == nil {
		return true
	}
	if a.Bool != nil {
		return *a.Bool
	}
	return true
}

// Forbidden reports whether additionalProperties: false was specified.
func (a *AdditionalProperties) Forbidden() bool {
	return a != nil && a.Bool != nil && !*a.Bool
}

// Typed reports whether additionalProperties carries an open-mapping
// schema rather than a plain boolean.
func (a *AdditionalProperties) Typed() bool {
	return a != nil && a.Schema != nil
}

// Items captures the two legal shapes of the "items" keyword: a single
// schema applied to every element, or a tuple of positional schemas.
type Items struct {
	Single *Schema
	Tuple  []*Schema
}

// Schema is the typed, decoded representation of a JSON Schema document
// (draft-04 compatible subset), per spec.md §3.
type Schema struct {
	Type        Type
	Title       string
	Description string

	Required   []string
	Properties *PropertyMap

	AdditionalProperties *AdditionalProperties
	Items                *Items

	Enum    []bric.Bric
	Const   *bric.Bric
	Default *bric.Bric

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema

	Ref string
	ID  string

	Definitions *PropertyMap

	MinItems *int
	MaxItems *int

	// Extensions preserves unknown keywords verbatim, per spec.md §4.D;
	// the reifier ignores them.
	Extensions *orderedmap.OrderedMap[string, bric.Bric]
}

// RequiredSet returns the members of Required as a set. Required is
// stored as an ordered slice (not a set) so that reification and error
// messages can report missing properties in declaration order, but
// membership itself is unordered per spec.md's "set of strings".
func (s *Schema) RequiredSet() map[string]bool {
	out := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		out[r] = true
	}
	return out
}

// IsComposedOnly reports whether s contributes nothing beyond one or more
// of allOf/anyOf/oneOf/not — used by the reifier's decision table to tell
// "pure composition" schemas apart from schemas that mix composition with
// their own properties (the latter falls through to allOf-style merging
// per the reifier's allOf case).
func (s *Schema) IsComposedOnly() bool {
	return len(s.Type) == 0 && s.Properties == nil && len(s.Enum) == 0 && s.Const == nil
}
