package reify

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"unicode"
)

// scope tracks names already allocated within one declaration's nesting
// level, so uniqueness can be enforced with a numeric suffix per
// spec.md §4.F's "Name allocation" rule.
type scope struct {
	used map[string]int
}

func newScope() *scope { return &scope{used: map[string]int{}} }

// allocate returns a name guaranteed unique within s, suffixing a counter
// onto collisions ("Foo", "Foo_2", "Foo_3", ...).
func (s *scope) allocate(name string) string {
	n, seen := s.used[name]
	if !seen {
		s.used[name] = 1
		return name
	}
	for {
		n++
		candidate := name + "_" + strconv.Itoa(n)
		if _, taken := s.used[candidate]; !taken {
			s.used[name] = n
			s.used[candidate] = 1
			return candidate
		}
	}
}

// resolveName implements the "effective name is renamer(parents,id) ??
// sanitize(id)" rule, followed by uniqueness within sc. reifyAt passes a
// fresh scope on every call, so sibling declarations reified by separate
// calls are not de-duplicated against each other here. path is the
// schema path this declaration occupies; it is threaded into sanitize so
// that an anonymous schema's fallback name is derived from where the
// schema lives in the document rather than from anything
// run-to-run-unstable, keeping reify deterministic per spec.md §8/§9.
func resolveName(opts Options, parents []string, id string, sc *scope, path string) string {
	if opts.Renamer != nil {
		if override, ok := opts.Renamer(parents, id); ok {
			return sc.allocate(override)
		}
	}
	return sc.allocate(sanitize(id, opts.KeywordsToAvoid, path))
}

// sanitize turns an arbitrary schema identifier (a property name, a $ref
// fragment, a title) into a legal Go identifier: non-identifier runes
// become "_", the result is title-cased to read as an exported Go type
// name, a leading digit gets an underscore prefix, and any collision with
// keywords gets a trailing underscore. path is only consulted when raw is
// empty, to make the fallback name a pure function of the schema's
// position rather than of anything nondeterministic.
func sanitize(raw string, keywords map[string]bool, path string) string {
	if raw == "" {
		// A genuinely anonymous schema (no $ref fragment, title, or
		// property key to sanitize) has nothing distinguishing it from
		// any other anonymous schema in a different scope; scope.allocate
		// already de-duplicates within one scope, but hashing the schema
		// path keeps independently-anonymous types from reading as the
		// same concept ("Value", "Value_2", ...) once the generated code
		// is skimmed by a person rather than the compiler, without
		// introducing any run-to-run variance.
		h := fnv.New32a()
		h.Write([]byte(path))
		return fmt.Sprintf("Value_%08x", h.Sum32())
	}
	if raw == "#" {
		raw = "Schema"
	}

	var b strings.Builder
	upperNext := true
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if upperNext {
				b.WriteRune(unicode.ToUpper(r))
				upperNext = false
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune('_')
			upperNext = true
		}
	}
	out := b.String()
	if out == "" {
		out = "Value"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	if keywords[out] || keywords[strings.ToLower(out)] {
		out += "_"
	}
	return out
}

// fieldName sanitizes a property key into a Go field name through the same
// sanitize pipeline as type names, including its mapping of "#" to
// "Schema"; it passes an empty path, so an empty key always gets the same
// hashed fallback name.
func fieldName(jsonName string, keywords map[string]bool) string {
	return sanitize(jsonName, keywords, "")
}
