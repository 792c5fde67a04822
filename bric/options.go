package bric

// ParseOptions configures the pull parser's tolerance for non-standard JSON
// dialect features. The zero value is NOT strict — callers that want the
// tightest behavior must set Strict explicitly (Strict wins over any other
// flag being set).
type ParseOptions struct {
	// AllowComments accepts "//" line comments and "/* */" block comments
	// between tokens.
	AllowComments bool

	// AllowTrailingCommas accepts a single trailing "," inside objects and
	// arrays.
	AllowTrailingCommas bool

	// AllowUnquotedKeys accepts identifier-like object keys without quotes.
	AllowUnquotedKeys bool

	// AllowNaNInfinity accepts NaN, Infinity and -Infinity as numbers.
	AllowNaNInfinity bool

	// Strict rejects every one of the above; duplicate object keys fail
	// rather than last-writer-wins.
	Strict bool

	// MaxDepth bounds array/object nesting. Zero means the default of 1024.
	MaxDepth int
}

// Strictest returns the tightest possible option set.
func Strictest() ParseOptions {
	return ParseOptions{Strict: true, MaxDepth: defaultMaxDepth}
}

// Permissive returns an option set that accepts every compatibility
// extension this parser understands.
func Permissive() ParseOptions {
	return ParseOptions{
		AllowComments:       true,
		AllowTrailingCommas: true,
		AllowUnquotedKeys:   true,
		AllowNaNInfinity:    true,
		MaxDepth:            defaultMaxDepth,
	}
}

const defaultMaxDepth = 1024

func (o ParseOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return o.MaxDepth
}
