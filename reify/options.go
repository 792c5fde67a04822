// Package reify implements the reifier (component F): the recursive
// schema.Schema → codemodel.CodeDecl transformation at the heart of the
// generator, per spec.md §4.F.
package reify

import "github.com/kaptinlin/bricolage/codemodel"

// Accessor chooses an access level for the declaration produced at path
// (the stack of enclosing declaration names plus the current id).
type Accessor func(path []string) codemodel.Access

// Renamer is a user hook to override the name the sanitize pipeline would
// otherwise produce. Returning ok=false falls through to sanitize(id).
type Renamer func(parents []string, rawName string) (override string, ok bool)

// Options configures a Reify invocation, per spec.md §4.F's option table.
type Options struct {
	Accessor Accessor
	Renamer  Renamer

	// IndirectCountThreshold: when a struct's own property count exceeds
	// this, every field naming another declaration is wrapped in Indirect,
	// even absent a recursion cycle. Only the struct's direct properties
	// are counted; fields of nested declarations are not.
	IndirectCountThreshold int

	GenerateEquals bool

	// KeywordsToAvoid are reserved identifiers in the target language;
	// sanitize appends "_" to any name that collides with this set.
	KeywordsToAvoid map[string]bool

	// PropertyOrder records that input schema property order is kept in
	// emitted struct fields. Reify does not consult it: fields always
	// follow schema property order, whether or not it is set.
	PropertyOrder bool
}

// DefaultOptions returns the option set Reify uses when none is supplied:
// exported access throughout, no renaming, a conservative indirection
// threshold, equality conformance requested, Go's keyword set reserved,
// and schema property order preserved.
func DefaultOptions() Options {
	return Options{
		Accessor:               func([]string) codemodel.Access { return codemodel.AccessExported },
		Renamer:                func([]string, string) (string, bool) { return "", false },
		IndirectCountThreshold: 8,
		GenerateEquals:         true,
		KeywordsToAvoid:        goKeywords(),
		PropertyOrder:          true,
	}
}

func goKeywords() map[string]bool {
	kws := []string{
		"break", "default", "func", "interface", "select",
		"case", "defer", "go", "map", "struct",
		"chan", "else", "goto", "package", "switch",
		"const", "fallthrough", "if", "range", "type",
		"continue", "for", "import", "return", "var",
	}
	out := make(map[string]bool, len(kws))
	for _, k := range kws {
		out[k] = true
	}
	return out
}
