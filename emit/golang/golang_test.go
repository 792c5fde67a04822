package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/emit"
)

func render(t *testing.T, decls ...codemodel.CodeDecl) string {
	t.Helper()
	module := codemodel.NewModule()
	for _, d := range decls {
		require.NoError(t, module.Append(d))
	}
	sink := emit.NewMemorySink()
	require.NoError(t, New("generated").Render(module, sink))
	src, ok := sink.Files["bricolage_generated.go"]
	require.True(t, ok, "expected bricolage_generated.go to be written")
	return string(src)
}

func TestRenderStructBasics(t *testing.T) {
	fields := []codemodel.Field{
		{Name: "Name", JSONName: "name", Type: codemodel.PrimitiveType(codemodel.PrimitiveString), Required: true},
		{Name: "Age", JSONName: "age", Type: codemodel.PrimitiveType(codemodel.PrimitiveInt)},
	}
	decl := codemodel.NewStruct("Person", "", codemodel.AccessExported, fields, nil, nil)

	src := render(t, decl)

	assert.Contains(t, src, "type Person struct {")
	assert.Contains(t, src, `Name string `+"`json:\"name\"`")
	assert.Contains(t, src, `Age int64 `+"`json:\"age\"`")
	assert.Contains(t, src, "func (v Person) EncodeBric() bric.Bric {")
	assert.Contains(t, src, "func (v *Person) DecodeBric(b bric.Bric, at pointer.Pointer) error {")
}

// TestDecodeThreadsPointerAcrossNesting guards against the regression a
// maintainer flagged: a nested Named field's decode must be handed a
// pointer extended with that field's key, not pointer.Root(), so a
// failure several levels deep reports its full path rather than
// resetting to "#" at each struct boundary.
func TestDecodeThreadsPointerAcrossNesting(t *testing.T) {
	inner := codemodel.NewStruct("Address", "", codemodel.AccessExported, []codemodel.Field{
		{Name: "City", JSONName: "city", Type: codemodel.PrimitiveType(codemodel.PrimitiveString), Required: true},
	}, nil, nil)
	outer := codemodel.NewStruct("Person", "", codemodel.AccessExported, []codemodel.Field{
		{Name: "Home", JSONName: "home", Type: codemodel.Named("Address"), Required: true},
	}, nil, nil)

	src := render(t, outer, inner)

	assert.Contains(t, src, `at.Key("home")`)
	assert.Contains(t, src, "(&v.Home).DecodeBric(raw, at.Key(\"home\"))")
	assert.NotContains(t, src, "pointer.Root()",
		"a generated decoder must never hardcode pointer.Root() below the entry point")
}

func TestRenderStructRejectAdditionalProperties(t *testing.T) {
	fields := []codemodel.Field{
		{Name: "Name", JSONName: "name", Type: codemodel.PrimitiveType(codemodel.PrimitiveString)},
	}
	decl := codemodel.NewStruct("Strict", "", codemodel.AccessExported, fields, nil, map[string]bool{
		"RejectAdditionalProperties": true,
	})

	src := render(t, decl)

	assert.Contains(t, src, "bric.NewAdditionalPropertyForbidden(at,")
	assert.NotContains(t, src, "map[string]bric.Bric{}",
		"a struct rejecting additional properties has no captured-properties field")
}

func TestRenderStructCapturesAdditionalProperties(t *testing.T) {
	decl := codemodel.NewStruct("Loose", "", codemodel.AccessExported, []codemodel.Field{
		{Name: "Extra", JSONName: "", Type: codemodel.MapOfBric()},
	}, nil, nil)

	src := render(t, decl)

	assert.Contains(t, src, "v.Extra = map[string]bric.Bric{}")
	assert.Contains(t, src, "v.Extra[pair.Key] = pair.Value")
}

// TestEquatableConformanceEmitsEqual guards the other half of the same
// review: Equatable must not be recorded without a method backing it.
func TestEquatableConformanceEmitsEqual(t *testing.T) {
	fields := []codemodel.Field{
		{Name: "Name", JSONName: "name", Type: codemodel.PrimitiveType(codemodel.PrimitiveString)},
	}
	decl := codemodel.NewStruct("Widget", "", codemodel.AccessExported, fields, nil, map[string]bool{
		"Equatable": true,
	})

	src := render(t, decl)

	assert.Contains(t, src, "func (v Widget) Equal(other Widget) bool {")
	assert.Contains(t, src, "v.EncodeBric().Equal(other.EncodeBric())")
}

func TestRenderStructWithoutEquatableOmitsEqual(t *testing.T) {
	decl := codemodel.NewStruct("Plain", "", codemodel.AccessExported, nil, nil, nil)

	src := render(t, decl)

	assert.NotContains(t, src, ") Equal(")
}

func TestRenderSumBasics(t *testing.T) {
	strPayload := codemodel.PrimitiveType(codemodel.PrimitiveString)
	intPayload := codemodel.PrimitiveType(codemodel.PrimitiveInt)
	decl := codemodel.NewSum("StringOrInt", "", codemodel.AccessExported, []codemodel.SumCase{
		{Name: "AsString", Payload: &strPayload},
		{Name: "AsInt", Payload: &intPayload},
	}, nil, nil)
	decl.Exclusive = true

	src := render(t, decl)

	assert.Contains(t, src, "type StringOrInt struct {\n\tCase string")
	assert.Contains(t, src, "func (v *StringOrInt) DecodeBric(b bric.Bric, at pointer.Pointer) error {")
	assert.Contains(t, src, "bric.NewNoAlternativeMatched(at,")
	assert.Contains(t, src, "decodeInto0(&c0, b, at)")
	assert.Contains(t, src, "func decodeInto0(dst *string, b bric.Bric, at pointer.Pointer) error {")
}

func TestRenderSumEquatable(t *testing.T) {
	strPayload := codemodel.PrimitiveType(codemodel.PrimitiveString)
	decl := codemodel.NewSum("Wrapped", "", codemodel.AccessExported, []codemodel.SumCase{
		{Name: "AsString", Payload: &strPayload},
	}, nil, map[string]bool{"Equatable": true})

	src := render(t, decl)

	assert.Contains(t, src, "func (v Wrapped) Equal(other Wrapped) bool {")
}

func TestRenderEnumBasics(t *testing.T) {
	decl := codemodel.NewEnum("Color", codemodel.PrimitiveString, []codemodel.EnumCase{
		{Name: "Red", Literal: `"red"`},
		{Name: "Blue", Literal: `"blue"`},
	})

	src := render(t, decl)

	assert.Contains(t, src, "type Color string")
	assert.Contains(t, src, "ColorRed Color = \"red\"")
	assert.Contains(t, src, "func (v *Color) DecodeBric(b bric.Bric, at pointer.Pointer) error {")
	assert.Contains(t, src, "bric.NewInvalidEnumValue(at,")
}

func TestRenderAliasBasics(t *testing.T) {
	decl := codemodel.NewAlias("UserID", codemodel.PrimitiveType(codemodel.PrimitiveString))

	src := render(t, decl)

	assert.Contains(t, src, "type UserID string")
	assert.Contains(t, src, "func (v *UserID) DecodeBric(b bric.Bric, at pointer.Pointer) error {")
}

func TestRenderModuleImportsAreSortedAndDeduped(t *testing.T) {
	module := codemodel.NewModule()
	module.RequireImport("fmt")
	module.RequireImport("fmt")
	module.RequireImport("strconv")
	require.NoError(t, module.Append(codemodel.NewAlias("ID", codemodel.PrimitiveType(codemodel.PrimitiveString))))

	sink := emit.NewMemorySink()
	require.NoError(t, New("generated").Render(module, sink))
	src := string(sink.Files["bricolage_generated.go"])

	fmtIdx := indexOf(src, `"fmt"`)
	strconvIdx := indexOf(src, `"strconv"`)
	require.GreaterOrEqual(t, fmtIdx, 0)
	require.GreaterOrEqual(t, strconvIdx, 0)
	assert.Less(t, fmtIdx, strconvIdx, "imports must render in sorted order")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
