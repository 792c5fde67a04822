package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/bricolage/bric"
)

func decodeJSON(t *testing.T, text string) *Schema {
	t.Helper()
	b, err := bric.Parse(text, bric.Strictest())
	require.NoError(t, err)
	s, err := Decode(b)
	require.NoError(t, err)
	return s
}

func TestDecodeBasicObject(t *testing.T) {
	s := decodeJSON(t, `{
		"type": "object",
		"title": "Person",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"additionalProperties": false
	}`)

	assert.Equal(t, Type{TypeObject}, s.Type)
	assert.Equal(t, "Person", s.Title)
	assert.Equal(t, []string{"name"}, s.Required)
	assert.True(t, s.AdditionalProperties.Forbidden())

	name, ok := s.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, Type{TypeString}, name.Type)

	age, ok := s.Properties.Get("age")
	require.True(t, ok)
	assert.Equal(t, Type{TypeInteger}, age.Type)
}

func TestDecodeEnumAndConst(t *testing.T) {
	s := decodeJSON(t, `{"enum": ["a", "b", 3]}`)
	require.Len(t, s.Enum, 3)
	str, _ := s.Enum[0].AsStr()
	assert.Equal(t, "a", str)

	s = decodeJSON(t, `{"const": 42}`)
	require.NotNil(t, s.Const)
	n, _ := s.Const.AsNum()
	assert.Equal(t, float64(42), n)
}

func TestDecodeComposition(t *testing.T) {
	s := decodeJSON(t, `{
		"allOf": [{"type": "object"}],
		"anyOf": [{"type": "string"}, {"type": "integer"}],
		"oneOf": [{"const": 1}, {"const": 2}],
		"not": {"type": "null"}
	}`)
	require.Len(t, s.AllOf, 1)
	require.Len(t, s.AnyOf, 2)
	require.Len(t, s.OneOf, 2)
	require.NotNil(t, s.Not)
	assert.Equal(t, Type{TypeNull}, s.Not.Type)
}

func TestDecodeItemsSingleAndTuple(t *testing.T) {
	s := decodeJSON(t, `{"items": {"type": "string"}}`)
	require.NotNil(t, s.Items.Single)
	assert.Nil(t, s.Items.Tuple)

	s = decodeJSON(t, `{"items": [{"type": "string"}, {"type": "integer"}]}`)
	require.Len(t, s.Items.Tuple, 2)
	assert.Nil(t, s.Items.Single)
}

func TestDecodeRefAndDefinitions(t *testing.T) {
	s := decodeJSON(t, `{
		"$ref": "#/definitions/Node",
		"definitions": {"Node": {"type": "object"}}
	}`)
	assert.Equal(t, "#/definitions/Node", s.Ref)
	node, ok := s.Definitions.Get("Node")
	require.True(t, ok)
	assert.Equal(t, Type{TypeObject}, node.Type)
}

func TestDecodePreservesUnknownKeywordsAsExtensions(t *testing.T) {
	s := decodeJSON(t, `{"type": "string", "format": "email", "x-custom": true}`)
	require.NotNil(t, s.Extensions)
	v, ok := s.Extensions.Get("format")
	require.True(t, ok)
	str, _ := v.AsStr()
	assert.Equal(t, "email", str)

	_, ok = s.Extensions.Get("x-custom")
	assert.True(t, ok)
}

func TestDecodeRejectsNonObject(t *testing.T) {
	b, err := bric.Parse(`"not a schema"`, bric.Strictest())
	require.NoError(t, err)
	_, err = Decode(b)
	assert.Error(t, err)
}
