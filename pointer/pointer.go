// Package pointer implements the JSON-pointer-like paths used in decode
// errors: the bind contracts thread a pointer through generated decoders,
// and schema.Decode reports errors against a path into the input schema
// document. Parse errors carry offsets instead, and reification errors
// carry a plain path string.
package pointer

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// Pointer is an ordered list of path components accumulated while descending
// into a Bric value or a Schema document. The zero value is the root pointer.
type Pointer []string

// Root is the empty pointer; both String and SchemaPath render it as "#".
func Root() Pointer { return nil }

// Key returns a new pointer with an object-key component appended.
func (p Pointer) Key(k string) Pointer {
	out := make(Pointer, len(p)+1)
	copy(out, p)
	out[len(p)] = k
	return out
}

// Index returns a new pointer with an array-index component appended.
func (p Pointer) Index(i int) Pointer {
	return p.Key(strconv.Itoa(i))
}

// String renders the pointer using RFC 6901 escaping ("~0"/"~1"), the same
// format the teacher's jsonpointer-based location strings use.
func (p Pointer) String() string {
	if len(p) == 0 {
		return "#"
	}
	return "#/" + jsonpointer.Format(p...)
}

// SchemaPath renders the pointer the way reification errors reference the
// input schema document: a leading "#" followed by slash-joined components,
// with no component-level escaping since schema paths are always keyword
// names or decimal indices.
func (p Pointer) SchemaPath() string {
	if len(p) == 0 {
		return "#"
	}
	return "#/" + strings.Join(p, "/")
}

// Parse decodes a JSON-pointer-like string ("#/a/b", "/a/b" or "a/b") back
// into path components, reversing String/SchemaPath.
func Parse(s string) Pointer {
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(s, "/")
	if s == "" {
		return nil
	}
	segments := jsonpointer.Parse(s)
	return Pointer(segments)
}
