package bric

import (
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Encode renders v as compact JSON text via MarshalJSONTo, the same
// jsontext.Encoder path the teacher's Schema.MarshalJSONTo routes
// through rather than writing tokens by hand. Deterministic(true)
// matches the teacher's own Schema.MarshalJSON/MarshalJSONTo pair, and
// is what makes the parse(encode(b)) == b law in spec.md §4.A hold for
// every finite b regardless of object key iteration order elsewhere.
func Encode(v Bric) ([]byte, error) {
	return jsonv2.Marshal(v, jsonv2.Deterministic(true))
}

// MarshalJSON implements encoding/json.Marshaler so a Bric can be embedded
// inside any struct marshaled by the standard library.
func (v Bric) MarshalJSON() ([]byte, error) {
	return Encode(v)
}

// MarshalJSONTo implements the go-json-experiment/json v2 MarshalerTo
// interface, delegating to the library's own encoder the way the teacher's
// Schema.MarshalJSONTo delegates to json.MarshalEncode rather than writing
// jsontext tokens by hand.
func (v Bric) MarshalJSONTo(enc *jsontext.Encoder, opts jsonv2.Options) error {
	switch v.kind {
	case KindNull:
		return jsonv2.MarshalEncode(enc, (*struct{})(nil), opts)
	case KindBool:
		return jsonv2.MarshalEncode(enc, v.b, opts)
	case KindNum:
		return jsonv2.MarshalEncode(enc, v.n, opts)
	case KindStr:
		return jsonv2.MarshalEncode(enc, v.s, opts)
	case KindArr:
		return jsonv2.MarshalEncode(enc, v.a, opts)
	case KindObj:
		if v.o == nil {
			return jsonv2.MarshalEncode(enc, map[string]Bric{}, opts)
		}
		return jsonv2.MarshalEncode(enc, v.o, opts)
	default:
		return ErrEncodeUnsupportedKind
	}
}

// UnmarshalJSON implements encoding/json.Unmarshaler by routing through the
// pull parser in strict mode.
func (v *Bric) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(string(data), Strictest())
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
