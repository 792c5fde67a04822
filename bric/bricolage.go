package bric

// Bricolage is the pluggable value builder the pull parser drives. A caller
// can supply a Bricolage[Bric] to get ordinary Bric values out of Parse, or
// a Bricolage[T] for some host-native T to parse straight into that
// representation without an intermediate Bric allocation pass.
type Bricolage[T any] interface {
	CreateNull() T
	CreateTrue() T
	CreateFalse() T
	CreateString(s string) T
	CreateNumber(text string) (T, error)
	CreateArray() T
	CreateObject() T
	PutElement(arr T, elem T) T
	PutKeyValue(obj T, key string, val T) T
}

// bricBuilder is the Bricolage[Bric] implementation used by Parse when the
// caller doesn't supply its own builder.
type bricBuilder struct{}

// BricBuilder returns the default Bricolage that builds ordinary Bric
// values.
func BricBuilder() Bricolage[Bric] { return bricBuilder{} }

func (bricBuilder) CreateNull() Bric  { return Null() }
func (bricBuilder) CreateTrue() Bric  { return Bool(true) }
func (bricBuilder) CreateFalse() Bric { return Bool(false) }
func (bricBuilder) CreateString(s string) Bric { return Str(s) }

func (bricBuilder) CreateNumber(text string) (Bric, error) {
	n, err := parseNumberText(text)
	if err != nil {
		return Bric{}, err
	}
	return Num(n), nil
}

func (bricBuilder) CreateArray() Bric  { return Arr() }
func (bricBuilder) CreateObject() Bric { return ObjOf(NewObj()) }

func (bricBuilder) PutElement(arr Bric, elem Bric) Bric {
	return Arr(append(append([]Bric{}, arr.a...), elem)...)
}

func (bricBuilder) PutKeyValue(obj Bric, key string, val Bric) Bric {
	m := obj.o
	if m == nil {
		m = NewObj()
	}
	m.Set(key, val)
	return ObjOf(m)
}
