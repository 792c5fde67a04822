// Package bric implements the generic JSON value model ("the Bric") that sits
// at the center of the generator: it is both the pull parser's default build
// target and the intermediate value every generated type's bind contracts
// (Encoder/Decoder) are defined against.
package bric

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which of the six JSON variants a Bric holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNum
	KindStr
	KindArr
	KindObj
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNum:
		return "number"
	case KindStr:
		return "string"
	case KindArr:
		return "array"
	case KindObj:
		return "object"
	default:
		return "unknown"
	}
}

// Obj is the insertion-order-preserving representation of a JSON object.
// Duplicate keys are resolved by the parser (last-writer-wins under
// compatibility options, rejected under strict mode) before an Obj is ever
// constructed, so Obj itself never needs to reason about duplicates.
type Obj = orderedmap.OrderedMap[string, Bric]

// Bric is an immutable tagged union over the six JSON value kinds. The zero
// value is Null.
type Bric struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Bric
	o    *Obj
}

// Null returns the JSON null value.
func Null() Bric { return Bric{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Bric { return Bric{kind: KindBool, b: b} }

// Num wraps a 64-bit float.
func Num(n float64) Bric { return Bric{kind: KindNum, n: n} }

// Str wraps a string.
func Str(s string) Bric { return Bric{kind: KindStr, s: s} }

// Arr wraps an ordered sequence of Bric values.
func Arr(elems ...Bric) Bric {
	cp := make([]Bric, len(elems))
	copy(cp, elems)
	return Bric{kind: KindArr, a: cp}
}

// NewObj returns an empty, insertion-order-preserving object builder.
func NewObj() *Obj { return orderedmap.New[string, Bric]() }

// ObjOf wraps an ordered map as a Bric object. A nil map is treated as empty.
func ObjOf(m *Obj) Bric {
	if m == nil {
		m = NewObj()
	}
	return Bric{kind: KindObj, o: m}
}

// Kind reports which variant this value holds.
func (v Bric) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Bric) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Bric) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNum returns the numeric payload and whether v is a Num.
func (v Bric) AsNum() (float64, bool) { return v.n, v.kind == KindNum }

// AsStr returns the string payload and whether v is a Str.
func (v Bric) AsStr() (string, bool) { return v.s, v.kind == KindStr }

// AsArr returns the element slice and whether v is an Arr. The returned
// slice must not be mutated by the caller.
func (v Bric) AsArr() ([]Bric, bool) { return v.a, v.kind == KindArr }

// AsObj returns the backing ordered map and whether v is an Obj. The
// returned map must not be mutated by the caller.
func (v Bric) AsObj() (*Obj, bool) { return v.o, v.kind == KindObj }

// Equal implements structural equality: order-insensitive for objects,
// order-sensitive for arrays, bitwise for numbers except that -0.0 == 0.0.
func (v Bric) Equal(other Bric) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNum:
		// Go's == already treats -0.0 as equal to 0.0, which is exactly the
		// one exception spec'd on top of bitwise equality.
		return v.n == other.n
	case KindStr:
		return v.s == other.s
	case KindArr:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObj:
		if v.o == nil || other.o == nil {
			return (v.o == nil || v.o.Len() == 0) && (other.o == nil || other.o.Len() == 0)
		}
		if v.o.Len() != other.o.Len() {
			return false
		}
		for pair := v.o.Oldest(); pair != nil; pair = pair.Next() {
			ov, ok := other.o.Get(pair.Key)
			if !ok || !pair.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
