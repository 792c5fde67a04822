package reify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/schema"
)

func decodeSchema(t *testing.T, text string) *schema.Schema {
	t.Helper()
	b, err := bric.Parse(text, bric.Strictest())
	require.NoError(t, err)
	s, err := schema.Decode(b)
	require.NoError(t, err)
	return s
}

func TestReifyObjectWithRequiredAndOptional(t *testing.T) {
	s := decodeSchema(t, `{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"additionalProperties": false
	}`)

	decl, err := Reify(s, "Person", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclStruct, decl.Kind())
	assert.Equal(t, "Person", decl.Name)
	assert.True(t, decl.Conformances["RejectAdditionalProperties"])

	var nameField, ageField *codemodel.Field
	for i := range decl.Fields {
		switch decl.Fields[i].JSONName {
		case "name":
			nameField = &decl.Fields[i]
		case "age":
			ageField = &decl.Fields[i]
		}
	}
	require.NotNil(t, nameField)
	require.NotNil(t, ageField)
	assert.True(t, nameField.Required)
	assert.Equal(t, codemodel.CodeTypePrimitive, nameField.Type.Kind())
	assert.False(t, ageField.Required)
	assert.Equal(t, codemodel.CodeTypeOptional, ageField.Type.Kind())
}

func TestReifyEnumSharedKind(t *testing.T) {
	s := decodeSchema(t, `{"enum": ["a", "b", "c"]}`)
	decl, err := Reify(s, "Color", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclEnum, decl.Kind())
	assert.Len(t, decl.EnumCases, 3)
}

func TestReifyEnumMixedKindsFails(t *testing.T) {
	s := decodeSchema(t, `{"enum": ["a", 1]}`)
	_, err := Reify(s, "Bad", nil, DefaultOptions())
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MixedEnumKinds, rerr.Kind)
}

func TestReifyOneOfProducesExclusiveSum(t *testing.T) {
	s := decodeSchema(t, `{
		"oneOf": [{"type": "string"}, {"type": "integer"}]
	}`)
	decl, err := Reify(s, "StringOrInt", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclSum, decl.Kind())
	assert.True(t, decl.Exclusive)
	assert.Len(t, decl.Cases, 2)
}

func TestReifyAnyOfProducesNonExclusiveSum(t *testing.T) {
	s := decodeSchema(t, `{
		"anyOf": [{"type": "string"}, {"type": "integer"}]
	}`)
	decl, err := Reify(s, "StringOrInt", nil, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, decl.Exclusive)
}

func TestReifyAllOfMergesFields(t *testing.T) {
	s := decodeSchema(t, `{
		"allOf": [
			{"type": "object", "properties": {"a": {"type": "string"}}},
			{"type": "object", "properties": {"b": {"type": "integer"}}}
		]
	}`)
	decl, err := Reify(s, "Merged", nil, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, codemodel.DeclStruct, decl.Kind())
	assert.Len(t, decl.Fields, 2)
}

func TestReifyAllOfConflictingTypesFails(t *testing.T) {
	s := decodeSchema(t, `{
		"allOf": [
			{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["a"]},
			{"type": "object", "properties": {"a": {"type": "integer"}}, "required": ["a"]}
		]
	}`)
	_, err := Reify(s, "Conflict", nil, DefaultOptions())
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, AmbiguousAllOf, rerr.Kind)
}

func TestReifyNotWrapsAssertion(t *testing.T) {
	s := decodeSchema(t, `{
		"type": "object",
		"properties": {"role": {"type": "string"}},
		"not": {"properties": {"role": {"const": "admin"}}}
	}`)
	decl, err := Reify(s, "NonAdmin", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclStruct, decl.Kind())
	assert.NotEmpty(t, decl.AssertNotType)
	assert.True(t, decl.Conformances["AssertNot"])
}

func TestReifySelfRefWrapsIndirect(t *testing.T) {
	s := decodeSchema(t, `{
		"type": "object",
		"properties": {
			"value": {"type": "integer"},
			"next": {"$ref": "#"}
		}
	}`)
	decl, err := Reify(s, "Node", nil, DefaultOptions())
	require.NoError(t, err)
	var nextField *codemodel.Field
	for i := range decl.Fields {
		if decl.Fields[i].JSONName == "next" {
			nextField = &decl.Fields[i]
		}
	}
	require.NotNil(t, nextField)
	inner, ok := nextField.Type.Elem()
	require.True(t, ok, "next field should be wrapped (Optional or Indirect)")
	// next is non-required, so it's Optional(Indirect(Named("Node")))
	if nextField.Type.Kind() == codemodel.CodeTypeOptional {
		indirectOrNamed, ok := inner.Elem()
		if ok {
			name, ok := indirectOrNamed.AsNamed()
			require.True(t, ok)
			assert.Equal(t, "Node", name)
		}
	}
}

func TestReifyArraySingleItems(t *testing.T) {
	s := decodeSchema(t, `{"type": "array", "items": {"type": "string"}}`)
	decl, err := Reify(s, "Strings", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclAlias, decl.Kind())
	assert.Equal(t, codemodel.CodeTypeArray, decl.Target.Kind())
}

func TestReifyArrayTupleItems(t *testing.T) {
	s := decodeSchema(t, `{"type": "array", "items": [{"type": "string"}, {"type": "integer"}]}`)
	decl, err := Reify(s, "Pair", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.CodeTypeTuple, decl.Target.Kind())
	parts, ok := decl.Target.Tuple()
	require.True(t, ok)
	assert.Len(t, parts, 2)
}

func TestReifyPrimitiveType(t *testing.T) {
	s := decodeSchema(t, `{"type": "string"}`)
	decl, err := Reify(s, "Name", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, codemodel.DeclAlias, decl.Kind())
	p, ok := decl.Target.AsPrimitive()
	require.True(t, ok)
	assert.Equal(t, codemodel.PrimitiveString, p)
}

func TestReifyNoTypeFallsBackToBric(t *testing.T) {
	s := decodeSchema(t, `{}`)
	decl, err := Reify(s, "Anything", nil, DefaultOptions())
	require.NoError(t, err)
	p, ok := decl.Target.AsPrimitive()
	require.True(t, ok)
	assert.Equal(t, codemodel.PrimitiveBric, p)
}

func TestReifyUnresolvedRefFails(t *testing.T) {
	s := decodeSchema(t, `{"$ref": "other.json#/Foo"}`)
	_, err := Reify(s, "Broken", nil, DefaultOptions())
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, UnresolvedRef, rerr.Kind)
}
