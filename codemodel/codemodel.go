// Package codemodel is the pure data model the reifier builds and the
// emitter renders: CodeType, CodeDecl, Field and CodeModule, per spec.md
// §4.E. It has no behavior beyond the one invariant the spec calls out —
// no two top-level declarations share a name, and no two nested
// declarations within the same Struct/Sum scope share a name.
package codemodel

import "fmt"

// Access is a target-language access level, chosen per declaration by the
// reifier's accessor callback.
type Access uint8

const (
	AccessExported Access = iota
	AccessUnexported
)

// Primitive enumerates the CodeType primitive kinds.
type Primitive uint8

const (
	PrimitiveBool Primitive = iota
	PrimitiveInt
	PrimitiveDouble
	PrimitiveString
	PrimitiveNull
	PrimitiveBric
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveBool:
		return "bool"
	case PrimitiveInt:
		return "int"
	case PrimitiveDouble:
		return "double"
	case PrimitiveString:
		return "string"
	case PrimitiveNull:
		return "null"
	case PrimitiveBric:
		return "bric"
	default:
		return "unknown"
	}
}

// CodeTypeKind discriminates the CodeType sum.
type CodeTypeKind uint8

const (
	CodeTypePrimitive CodeTypeKind = iota
	CodeTypeNamed
	CodeTypeArray
	CodeTypeOptional
	CodeTypeTuple
	CodeTypeIndirect
	// CodeTypeMap is a string-keyed open mapping to a Bric value, the
	// shape decision-table step 7 requires for an object's captured
	// additional properties. It is always "string -> Bric": the reifier
	// has no open-ended mapping-of-T construct, only this one fixed shape.
	CodeTypeMap
)

// CodeType is a sum over the seven shapes a field or alias target can take.
// Only the fields relevant to Kind are populated; the zero value is an
// invalid CodeType (Kind defaults to CodeTypePrimitive with PrimitiveBool,
// so always construct through one of the constructors below).
type CodeType struct {
	kind CodeTypeKind

	primitive Primitive
	named     string
	elem      *CodeType
	tuple     []CodeType
}

// PrimitiveType builds a CodeType wrapping a primitive kind.
func PrimitiveType(p Primitive) CodeType { return CodeType{kind: CodeTypePrimitive, primitive: p} }

// Named builds a CodeType referencing a declaration by qualified name.
// Per spec.md §4.E's ownership note, this is a name reference, never a
// pointer into the CodeModule — it survives the module being copied or
// reordered.
func Named(qualifiedName string) CodeType { return CodeType{kind: CodeTypeNamed, named: qualifiedName} }

// ArrayOf builds a CodeType for a homogeneous sequence.
func ArrayOf(elem CodeType) CodeType { return CodeType{kind: CodeTypeArray, elem: &elem} }

// OptionalOf builds a CodeType for a value that may be absent.
func OptionalOf(elem CodeType) CodeType { return CodeType{kind: CodeTypeOptional, elem: &elem} }

// TupleOf builds a CodeType for a fixed-length, heterogeneous sequence.
func TupleOf(elems ...CodeType) CodeType {
	cp := make([]CodeType, len(elems))
	copy(cp, elems)
	return CodeType{kind: CodeTypeTuple, tuple: cp}
}

// IndirectOf builds a CodeType wrapping elem behind a single-field
// indirection, used to break an otherwise-unbounded recursive value size.
func IndirectOf(elem CodeType) CodeType { return CodeType{kind: CodeTypeIndirect, elem: &elem} }

// MapOfBric builds the CodeType used for an object's captured
// additionalProperties: a string-keyed mapping to Bric.
func MapOfBric() CodeType { return CodeType{kind: CodeTypeMap} }

// Kind reports which CodeType variant this is.
func (t CodeType) Kind() CodeTypeKind { return t.kind }

// AsPrimitive returns the primitive kind and whether t is a Primitive.
func (t CodeType) AsPrimitive() (Primitive, bool) { return t.primitive, t.kind == CodeTypePrimitive }

// AsNamed returns the qualified name and whether t is a Named.
func (t CodeType) AsNamed() (string, bool) { return t.named, t.kind == CodeTypeNamed }

// Elem returns the wrapped element type for Array, Optional and Indirect,
// or ok=false for every other kind.
func (t CodeType) Elem() (CodeType, bool) {
	if t.elem == nil {
		return CodeType{}, false
	}
	return *t.elem, true
}

// Tuple returns the component types and whether t is a Tuple.
func (t CodeType) Tuple() ([]CodeType, bool) { return t.tuple, t.kind == CodeTypeTuple }

// Field is one member of a Struct declaration.
type Field struct {
	Name     string
	JSONName string
	Type     CodeType
	Required bool
	Default  *string // rendered literal, set only when a schema default exists
}

// DeclKind discriminates the CodeDecl sum.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota
	DeclSum
	DeclAlias
	DeclEnum
)

// SumCase is one branch of a Sum declaration.
type SumCase struct {
	Name    string
	Payload *CodeType // nil for a payload-less case
}

// EnumCase is one literal of an Enum declaration.
type EnumCase struct {
	Name string
	// Literal is the rendered form of the bric.Bric literal this case
	// corresponds to; emit/golang renders it as a Go literal expression.
	Literal string
}

// CodeDecl is a sum over the four declaration shapes the reifier produces.
type CodeDecl struct {
	kind DeclKind

	Name   string
	Doc    string
	Access Access

	// Struct
	Fields       []Field
	Conformances map[string]bool
	// AssertNotType, set only on a Struct produced from decision-table
	// step 6 ("not" present alongside object fields), names the nested
	// declaration (see Nested) whose decode must NOT succeed.
	AssertNotType string

	// Sum (also uses Conformances above)
	Cases []SumCase
	// Exclusive distinguishes oneOf-derived Sums (exactly one case must
	// decode) from anyOf-derived Sums (first matching case wins).
	Exclusive bool

	// Alias
	Target CodeType

	// Enum
	RawType    Primitive
	EnumCases  []EnumCase

	Nested []CodeDecl
}

// Kind reports which CodeDecl variant this is.
func (d CodeDecl) Kind() DeclKind { return d.kind }

// NewStruct builds a Struct declaration.
func NewStruct(name, doc string, access Access, fields []Field, nested []CodeDecl, conformances map[string]bool) CodeDecl {
	return CodeDecl{kind: DeclStruct, Name: name, Doc: doc, Access: access, Fields: fields, Nested: nested, Conformances: conformances}
}

// NewSum builds a Sum declaration.
func NewSum(name, doc string, access Access, cases []SumCase, nested []CodeDecl, conformances map[string]bool) CodeDecl {
	return CodeDecl{kind: DeclSum, Name: name, Doc: doc, Access: access, Cases: cases, Nested: nested, Conformances: conformances}
}

// NewAlias builds an Alias declaration.
func NewAlias(name string, target CodeType) CodeDecl {
	return CodeDecl{kind: DeclAlias, Name: name, Target: target}
}

// NewEnum builds an Enum declaration.
func NewEnum(name string, rawType Primitive, cases []EnumCase) CodeDecl {
	return CodeDecl{kind: DeclEnum, Name: name, RawType: rawType, EnumCases: cases}
}

// CodeModule is the append-only output of a single reification, handed to
// the emitter once reification completes. Per spec.md §4.E's lifecycle
// note, nothing mutates a CodeModule after emission begins.
type CodeModule struct {
	Types   []CodeDecl
	Imports map[string]bool
}

// NewModule returns an empty CodeModule.
func NewModule() *CodeModule {
	return &CodeModule{Imports: map[string]bool{}}
}

// Append adds a top-level declaration, enforcing the no-duplicate-name
// invariant across the module's existing top-level declarations.
func (m *CodeModule) Append(d CodeDecl) error {
	for _, existing := range m.Types {
		if existing.Name == d.Name {
			return fmt.Errorf("codemodel: duplicate top-level declaration name %q", d.Name)
		}
	}
	if err := checkNestedUnique(d); err != nil {
		return err
	}
	m.Types = append(m.Types, d)
	return nil
}

// RequireImport records a third-party or stdlib import path the emitted
// code for this module depends on.
func (m *CodeModule) RequireImport(path string) {
	m.Imports[path] = true
}

func checkNestedUnique(d CodeDecl) error {
	seen := map[string]bool{}
	for _, n := range d.Nested {
		if seen[n.Name] {
			return fmt.Errorf("codemodel: duplicate nested declaration name %q within %q", n.Name, d.Name)
		}
		seen[n.Name] = true
		if err := checkNestedUnique(n); err != nil {
			return err
		}
	}
	return nil
}
