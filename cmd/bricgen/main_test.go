package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/emit"
	_ "github.com/kaptinlin/bricolage/emit/golang"
	"github.com/kaptinlin/bricolage/reify"
	"github.com/kaptinlin/bricolage/schema"
)

func TestDeriveName(t *testing.T) {
	assert.Equal(t, "Person", deriveName("person.schema.json"))
	assert.Equal(t, "Order", deriveName("order.json"))
	assert.Equal(t, "Root", deriveName(""))
}

// TestPipelineEndToEnd exercises the same decode -> reify -> emit chain
// runGenerate drives, without going through cobra or the filesystem.
func TestPipelineEndToEnd(t *testing.T) {
	doc, err := bric.Parse(`{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"definitions": {
			"Address": {
				"type": "object",
				"properties": {"city": {"type": "string"}}
			}
		}
	}`, bric.Strictest())
	require.NoError(t, err)

	s, err := schema.Decode(doc)
	require.NoError(t, err)

	opts := reify.DefaultOptions()
	module := codemodel.NewModule()

	rootDecl, err := reify.Reify(s, "Person", []string{"Person"}, opts)
	require.NoError(t, err)
	require.NoError(t, module.Append(rootDecl))

	for pair := s.Definitions.Oldest(); pair != nil; pair = pair.Next() {
		decl, err := reify.Reify(pair.Value, pair.Key, []string{"Person", pair.Key}, opts)
		require.NoError(t, err)
		require.NoError(t, module.Append(decl))
	}

	sink := emit.NewMemorySink()
	require.NoError(t, emit.Emit(module, "go", sink))

	require.Len(t, sink.Files, 1)
	for _, contents := range sink.Files {
		src := string(contents)
		assert.Contains(t, src, "type Person struct")
		assert.Contains(t, src, "type Address struct")
	}
}
