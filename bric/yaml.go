package bric

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a YAML document into a Bric, converging with Parse on
// the same value model. JSON Schema documents are frequently authored as
// YAML; this is a supplement to spec.md, not a requirement of it.
//
// YAML mappings don't carry a canonical key order the way JSON object
// source text does, so keys here are sorted for determinism rather than
// reflecting document order — the ordering guarantee in spec.md §9 is
// stated for the JSON pull parser, and this path is the one place in the
// package where that guarantee is instead satisfied by a total order
// (lexicographic) rather than by preserving insertion order.
func ParseYAML(text string) (Bric, error) {
	var raw interface{}
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return Bric{}, fmt.Errorf("bric: parse yaml: %w", err)
	}
	return fromGoValue(raw), nil
}

func fromGoValue(v interface{}) Bric {
	switch val := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case int:
		return Num(float64(val))
	case int64:
		return Num(float64(val))
	case uint64:
		return Num(float64(val))
	case float64:
		return Num(val)
	case string:
		return Str(val)
	case []interface{}:
		elems := make([]Bric, len(val))
		for i, e := range val {
			elems[i] = fromGoValue(e)
		}
		return Arr(elems...)
	case map[string]interface{}:
		return ObjOf(sortedObj(val))
	case map[interface{}]interface{}:
		strMap := make(map[string]interface{}, len(val))
		for k, v := range val {
			strMap[fmt.Sprint(k)] = v
		}
		return ObjOf(sortedObj(strMap))
	default:
		return Null()
	}
}

func sortedObj(m map[string]interface{}) *Obj {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := NewObj()
	for _, k := range keys {
		out.Set(k, fromGoValue(m[k]))
	}
	return out
}
