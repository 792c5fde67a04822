package reify

import "github.com/kaptinlin/bricolage/codemodel"

// wrapIfRecursive implements the "Recursion and indirection" rule of
// spec.md §4.F. A field whose type directly names the struct currently
// being built is a self-reference and is always wrapped in Indirect — Go
// cannot lay out a non-indirect self-referential struct by value in the
// first place, so this case is not optional. Independently,
// indirectCountThreshold triggers the same wrapping for any field that
// names another declaration once the struct's own field count grows
// large, keeping generated values small by value per the option's stated
// purpose, even absent a true cycle.
func wrapIfRecursive(selfName string, t codemodel.CodeType, fieldCount, threshold int) codemodel.CodeType {
	named, ok := t.AsNamed()
	if !ok {
		return t
	}
	if named == selfName {
		return codemodel.IndirectOf(t)
	}
	if threshold > 0 && fieldCount > threshold {
		return codemodel.IndirectOf(t)
	}
	return t
}
