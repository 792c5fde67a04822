// Package emit renders a codemodel.CodeModule to text for a chosen target
// language (component G, per spec.md §4.G). The core package is
// target-agnostic; emit/golang supplies the one target this generator
// ships with.
package emit

import (
	"fmt"

	"github.com/kaptinlin/bricolage/codemodel"
)

// Sink receives the emitted file(s) for a module. A single Renderer may
// call Write more than once (e.g. one file per declaration); callers that
// only want one in-memory buffer can use a Sink that concatenates.
type Sink interface {
	Write(filename string, contents []byte) error
}

// Renderer renders an entire CodeModule to one target language.
type Renderer interface {
	Render(module *codemodel.CodeModule, sink Sink) error
}

var renderers = map[string]Renderer{}

// Register adds a Renderer under a target tag, so Emit can dispatch to it
// by name. Called from each target subpackage's init.
func Register(target string, r Renderer) {
	renderers[target] = r
}

// Emit renders module for target and writes the result(s) through sink.
// Emission is deterministic per spec.md §4.G: declarations render in
// insertion order, fields in propertyOrder, cases in schema order — that
// determinism is a property of how CodeModule was built, not something
// Emit itself has to impose.
func Emit(module *codemodel.CodeModule, target string, sink Sink) error {
	r, ok := renderers[target]
	if !ok {
		return fmt.Errorf("emit: no renderer registered for target %q", target)
	}
	return r.Render(module, sink)
}
