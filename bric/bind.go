package bric

import (
	"fmt"

	"github.com/kaptinlin/go-i18n"

	"github.com/kaptinlin/bricolage/pointer"
)

// Encoder is implemented by every generated type. It never fails: a
// well-typed value always has a total JSON representation.
type Encoder interface {
	EncodeBric() Bric
}

// Decoder is implemented by every generated type. It partially constructs
// Self from a Bric, reporting precisely where decoding failed. at is the
// pointer to the location b occupies in the document being decoded; a
// top-level caller passes pointer.Root(), and every nested DecodeBric
// call descending into a field, element, or case payload is passed at
// extended with that step, so a deeply nested failure reports the full
// path from the document root rather than resetting to "#" at each
// struct boundary.
type Decoder interface {
	DecodeBric(b Bric, at pointer.Pointer) error
}

// BindErrorKind enumerates the ways a generated Decoder can reject a Bric,
// per spec.md §4.C.
type BindErrorKind uint8

const (
	MissingRequired BindErrorKind = iota
	UnexpectedType
	InvalidEnumValue
	TooFewItems
	TooManyItems
	AdditionalPropertyForbidden
	NotSchemaMatched
	NoAlternativeMatched
	ExactlyOneViolated
)

func (k BindErrorKind) String() string {
	switch k {
	case MissingRequired:
		return "Missing required property"
	case UnexpectedType:
		return "Unexpected type"
	case InvalidEnumValue:
		return "Invalid value"
	case TooFewItems:
		return "Too few items"
	case TooManyItems:
		return "Too many items"
	case AdditionalPropertyForbidden:
		return "Additional property forbidden"
	case NotSchemaMatched:
		return "Value unexpectedly matched the negated schema"
	case NoAlternativeMatched:
		return "No alternative matched"
	case ExactlyOneViolated:
		return "More than one alternative matched"
	default:
		return "Bind error"
	}
}

// BindError is returned by generated DecodeBric implementations. It
// formats as "<Problem> at <pointer> of type <qualified name>" per
// spec.md §7.
type BindError struct {
	Kind         BindErrorKind
	Pointer      pointer.Pointer
	ExpectedType string
	Detail       string
	// Causes collects the per-alternative failures for NoAlternativeMatched.
	Causes []error
}

func (e *BindError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return fmt.Sprintf("%s at %s of type %s", msg, e.Pointer.String(), e.ExpectedType)
}

// Localize renders the error through an i18n.Localizer, mirroring the
// teacher's EvaluationError.Localize. Falls back to Error() when localizer
// is nil or has no translation registered for the kind.
func (e *BindError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	code := bindErrorCode(e.Kind)
	msg := localizer.Get(code, i18n.Vars(map[string]any{
		"pointer": e.Pointer.String(),
		"type":    e.ExpectedType,
		"detail":  e.Detail,
	}))
	if msg == "" || msg == code {
		return e.Error()
	}
	return msg
}

func bindErrorCode(k BindErrorKind) string {
	switch k {
	case MissingRequired:
		return "bind.missing_required"
	case UnexpectedType:
		return "bind.unexpected_type"
	case InvalidEnumValue:
		return "bind.invalid_enum_value"
	case TooFewItems:
		return "bind.too_few_items"
	case TooManyItems:
		return "bind.too_many_items"
	case AdditionalPropertyForbidden:
		return "bind.additional_property_forbidden"
	case NotSchemaMatched:
		return "bind.not_schema_matched"
	case NoAlternativeMatched:
		return "bind.no_alternative_matched"
	case ExactlyOneViolated:
		return "bind.exactly_one_violated"
	default:
		return "bind.unknown"
	}
}

// NewMissingRequired builds the BindError for a missing required property.
func NewMissingRequired(p pointer.Pointer, typeName, key string) *BindError {
	return &BindError{Kind: MissingRequired, Pointer: p, ExpectedType: typeName, Detail: fmt.Sprintf("%q", key)}
}

// NewUnexpectedType builds the BindError for a type mismatch.
func NewUnexpectedType(p pointer.Pointer, typeName, expected, got string) *BindError {
	return &BindError{Kind: UnexpectedType, Pointer: p, ExpectedType: typeName, Detail: fmt.Sprintf("(expected %s, got %s)", expected, got)}
}

// NewInvalidEnumValue builds the BindError for a value outside an enum's
// literal set.
func NewInvalidEnumValue(p pointer.Pointer, typeName string, value Bric) *BindError {
	text, _ := Encode(value)
	return &BindError{Kind: InvalidEnumValue, Pointer: p, ExpectedType: typeName, Detail: string(text)}
}

// NewAdditionalPropertyForbidden builds the BindError for an extra key
// rejected by additionalProperties: false.
func NewAdditionalPropertyForbidden(p pointer.Pointer, typeName, key string) *BindError {
	return &BindError{Kind: AdditionalPropertyForbidden, Pointer: p, ExpectedType: typeName, Detail: fmt.Sprintf("%q", key)}
}

// NewNoAlternativeMatched builds the BindError for an anyOf/oneOf with zero
// matching alternatives, carrying every alternative's own failure.
func NewNoAlternativeMatched(p pointer.Pointer, typeName string, causes []error) *BindError {
	return &BindError{Kind: NoAlternativeMatched, Pointer: p, ExpectedType: typeName, Causes: causes}
}

// NewExactlyOneViolated builds the BindError for a oneOf matched by more
// than one alternative.
func NewExactlyOneViolated(p pointer.Pointer, typeName string, matchedIndices []int) *BindError {
	return &BindError{Kind: ExactlyOneViolated, Pointer: p, ExpectedType: typeName, Detail: fmt.Sprintf("(indices %v)", matchedIndices)}
}
