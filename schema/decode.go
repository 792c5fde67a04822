package schema

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/pointer"
)

// knownKeywords lists every keyword Decode interprets itself. Anything else
// found in a schema object is preserved verbatim in Extensions rather than
// rejected — unlike the teacher's compiler, which is validating instances
// against a fixed keyword set, Decode is reading a configuration document
// and has no business failing on a keyword it merely doesn't generate code
// for yet.
var knownKeywords = map[string]bool{
	"type": true, "title": true, "description": true,
	"required": true, "properties": true,
	"additionalProperties": true, "items": true,
	"enum": true, "const": true, "default": true,
	"allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"$ref": true, "$id": true, "id": true,
	"definitions": true, "$defs": true,
	"minItems": true, "maxItems": true,
}

// Decode builds a *Schema from a parsed Bric, per spec.md §4.D. b must be a
// JSON object; boolean schemas (true/false as a whole schema) are outside
// this generator's draft-04-compatible scope and are rejected.
func Decode(b bric.Bric) (*Schema, error) {
	return decodeAt(b, pointer.Root())
}

func decodeAt(b bric.Bric, path pointer.Pointer) (*Schema, error) {
	obj, ok := b.AsObj()
	if !ok {
		return nil, fmt.Errorf("schema: decode at %s: expected object, got %s", path, b.Kind())
	}

	s := &Schema{}

	if v, ok := obj.Get("type"); ok {
		t, err := decodeType(v, path.Key("type"))
		if err != nil {
			return nil, err
		}
		s.Type = t
	}
	if v, ok := obj.Get("title"); ok {
		str, ok := v.AsStr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: title must be a string", path.Key("title"))
		}
		s.Title = str
	}
	if v, ok := obj.Get("description"); ok {
		str, ok := v.AsStr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: description must be a string", path.Key("description"))
		}
		s.Description = str
	}
	if v, ok := obj.Get("required"); ok {
		req, err := decodeStringArray(v, path.Key("required"))
		if err != nil {
			return nil, err
		}
		s.Required = req
	}
	if v, ok := obj.Get("properties"); ok {
		props, err := decodePropertyMap(v, path.Key("properties"))
		if err != nil {
			return nil, err
		}
		s.Properties = props
	}
	if v, ok := obj.Get("additionalProperties"); ok {
		ap, err := decodeAdditionalProperties(v, path.Key("additionalProperties"))
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = ap
	}
	if v, ok := obj.Get("items"); ok {
		items, err := decodeItems(v, path.Key("items"))
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	if v, ok := obj.Get("enum"); ok {
		arr, ok := v.AsArr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: enum must be an array", path.Key("enum"))
		}
		s.Enum = append([]bric.Bric(nil), arr...)
	}
	if v, ok := obj.Get("const"); ok {
		cv := v
		s.Const = &cv
	}
	if v, ok := obj.Get("default"); ok {
		dv := v
		s.Default = &dv
	}
	for _, kw := range []struct {
		name string
		dst  *[]*Schema
	}{
		{"allOf", &s.AllOf}, {"anyOf", &s.AnyOf}, {"oneOf", &s.OneOf},
	} {
		if v, ok := obj.Get(kw.name); ok {
			list, err := decodeSchemaArray(v, path.Key(kw.name))
			if err != nil {
				return nil, err
			}
			*kw.dst = list
		}
	}
	if v, ok := obj.Get("not"); ok {
		sub, err := decodeAt(v, path.Key("not"))
		if err != nil {
			return nil, err
		}
		s.Not = sub
	}
	if v, ok := obj.Get("$ref"); ok {
		str, ok := v.AsStr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: $ref must be a string", path.Key("$ref"))
		}
		s.Ref = str
	}
	for _, idKey := range []string{"$id", "id"} {
		if v, ok := obj.Get(idKey); ok {
			str, ok := v.AsStr()
			if !ok {
				return nil, fmt.Errorf("schema: %s: must be a string", path.Key(idKey))
			}
			s.ID = str
			break
		}
	}
	for _, defsKey := range []string{"definitions", "$defs"} {
		if v, ok := obj.Get(defsKey); ok {
			defs, err := decodePropertyMap(v, path.Key(defsKey))
			if err != nil {
				return nil, err
			}
			s.Definitions = defs
			break
		}
	}
	if v, ok := obj.Get("minItems"); ok {
		n, err := decodeIntKeyword(v, path.Key("minItems"))
		if err != nil {
			return nil, err
		}
		s.MinItems = &n
	}
	if v, ok := obj.Get("maxItems"); ok {
		n, err := decodeIntKeyword(v, path.Key("maxItems"))
		if err != nil {
			return nil, err
		}
		s.MaxItems = &n
	}

	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if knownKeywords[pair.Key] {
			continue
		}
		if s.Extensions == nil {
			s.Extensions = orderedmap.New[string, bric.Bric]()
		}
		s.Extensions.Set(pair.Key, pair.Value)
	}

	return s, nil
}

func decodeType(v bric.Bric, path pointer.Pointer) (Type, error) {
	if str, ok := v.AsStr(); ok {
		return Type{str}, nil
	}
	arr, ok := v.AsArr()
	if !ok {
		return nil, fmt.Errorf("schema: %s: type must be a string or array of strings", path)
	}
	out := make(Type, len(arr))
	for i, e := range arr {
		str, ok := e.AsStr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: type entries must be strings", path.Index(i))
		}
		out[i] = str
	}
	return out, nil
}

func decodeStringArray(v bric.Bric, path pointer.Pointer) ([]string, error) {
	arr, ok := v.AsArr()
	if !ok {
		return nil, fmt.Errorf("schema: %s: must be an array of strings", path)
	}
	out := make([]string, len(arr))
	for i, e := range arr {
		str, ok := e.AsStr()
		if !ok {
			return nil, fmt.Errorf("schema: %s: must be a string", path.Index(i))
		}
		out[i] = str
	}
	return out, nil
}

func decodePropertyMap(v bric.Bric, path pointer.Pointer) (*PropertyMap, error) {
	obj, ok := v.AsObj()
	if !ok {
		return nil, fmt.Errorf("schema: %s: must be an object", path)
	}
	out := NewPropertyMap()
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		sub, err := decodeAt(pair.Value, path.Key(pair.Key))
		if err != nil {
			return nil, err
		}
		out.Set(pair.Key, sub)
	}
	return out, nil
}

func decodeAdditionalProperties(v bric.Bric, path pointer.Pointer) (*AdditionalProperties, error) {
	if b, ok := v.AsBool(); ok {
		return &AdditionalProperties{Bool: &b}, nil
	}
	sub, err := decodeAt(v, path)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: must be a boolean or schema: %w", path, err)
	}
	return &AdditionalProperties{Schema: sub}, nil
}

func decodeItems(v bric.Bric, path pointer.Pointer) (*Items, error) {
	if arr, ok := v.AsArr(); ok {
		tuple := make([]*Schema, len(arr))
		for i, e := range arr {
			sub, err := decodeAt(e, path.Index(i))
			if err != nil {
				return nil, err
			}
			tuple[i] = sub
		}
		return &Items{Tuple: tuple}, nil
	}
	sub, err := decodeAt(v, path)
	if err != nil {
		return nil, err
	}
	return &Items{Single: sub}, nil
}

func decodeSchemaArray(v bric.Bric, path pointer.Pointer) ([]*Schema, error) {
	arr, ok := v.AsArr()
	if !ok {
		return nil, fmt.Errorf("schema: %s: must be an array of schemas", path)
	}
	out := make([]*Schema, len(arr))
	for i, e := range arr {
		sub, err := decodeAt(e, path.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

func decodeIntKeyword(v bric.Bric, path pointer.Pointer) (int, error) {
	n, ok := v.AsNum()
	if !ok {
		return 0, fmt.Errorf("schema: %s: must be a number", path)
	}
	return int(n), nil
}
