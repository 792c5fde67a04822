package bric

import "errors"

// Sentinel errors for failures that are not data-dependent and so do not
// carry a Pointer — configuration mistakes made by the caller, not defects
// in the document being processed. Mirrors the small sentinel-error
// catalogue style of the teacher's errors.go (ErrSchemaIsNil,
// ErrConfigCannotBeNil), scoped down to what this core actually needs.
var (
	// ErrNilBricolage is returned when ParseWith is called with a nil
	// Bricolage builder.
	ErrNilBricolage = errors.New("bric: bricolage builder is nil")

	// ErrEmptyInput is returned when the input text contains no value at all.
	ErrEmptyInput = errors.New("bric: empty input")

	// ErrEncodeUnsupportedKind is returned when Encode encounters a Bric
	// whose Kind is not one of the six defined variants (should not happen
	// for values constructed through this package's own constructors).
	ErrEncodeUnsupportedKind = errors.New("bric: unsupported kind for encode")
)
