// Command bricgen drives the full pipeline: it reads a JSON or YAML
// schema document, decodes it into a schema.Schema, reifies every
// definition into a codemodel.CodeModule, and emits Go source for the
// result. It plays the same role cmd/schemagen plays for the teacher's
// struct-tag generator, but front-to-back through this module's own
// pipeline instead of reading Go source.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/bricolage/bric"
	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/emit"
	"github.com/kaptinlin/bricolage/emit/golang"
	"github.com/kaptinlin/bricolage/internal/cliutil"
	"github.com/kaptinlin/bricolage/reify"
	"github.com/kaptinlin/bricolage/schema"
)

var (
	outDir      string
	packageName string
	rootName    string
	target      string
	yamlInput   bool
	verbose     bool
)

func main() {
	root := &cobra.Command{
		Use:   "bricgen <schema-file>",
		Short: "Generate Go source from a JSON Schema document",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}

	flags := root.Flags()
	flags.StringVarP(&outDir, "out", "o", ".", "output directory for generated source")
	flags.StringVar(&packageName, "package", "generated", "package name for the generated file")
	flags.StringVar(&rootName, "name", "", "Go type name for the root schema (default: derived from the file name)")
	flags.StringVar(&target, "target", "go", "emit target (registered in package emit)")
	flags.BoolVar(&yamlInput, "yaml", false, "parse the input as YAML instead of JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print progress as each definition is reified")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := cliutil.NewLogger(verbose)
	inputPath := args[0]

	log.Infof("reading %s", inputPath)
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("bricgen: %w", err)
	}

	if rootName == "" {
		rootName = deriveName(inputPath)
	}

	var doc bric.Bric
	if yamlInput {
		doc, err = bric.ParseYAML(string(raw))
	} else {
		doc, err = bric.Parse(string(raw), bric.Strictest())
	}
	if err != nil {
		log.Errorf("parse %s: %v", inputPath, err)
		return err
	}

	s, err := schema.Decode(doc)
	if err != nil {
		log.Errorf("decode %s: %v", inputPath, err)
		return err
	}

	opts := reify.DefaultOptions()
	module := codemodel.NewModule()

	log.Infof("reifying root schema as %s", rootName)
	rootDecl, err := reify.Reify(s, rootName, []string{rootName}, opts)
	if err != nil {
		log.Errorf("reify %s: %v", rootName, err)
		return err
	}
	if err := module.Append(rootDecl); err != nil {
		log.Errorf("append %s: %v", rootName, err)
		return err
	}
	log.Donef("reified %s (%d declaration(s))", rootName, 1+len(rootDecl.Nested))

	if s.Definitions != nil {
		for pair := s.Definitions.Oldest(); pair != nil; pair = pair.Next() {
			defName := pair.Key
			log.Infof("reifying definition %s", defName)
			decl, err := reify.Reify(pair.Value, defName, []string{rootName, defName}, opts)
			if err != nil {
				log.Errorf("reify definition %s: %v", defName, err)
				return err
			}
			if err := module.Append(decl); err != nil {
				log.Errorf("append definition %s: %v", defName, err)
				return err
			}
			log.Donef("reified definition %s", defName)
		}
	}

	log.Infof("emitting target %q into %s", target, outDir)
	sink := &emit.DirSink{Dir: outDir}
	emit.Register("go", golang.New(packageName))
	if err := emit.Emit(module, target, sink); err != nil {
		log.Errorf("emit: %v", err)
		return err
	}

	log.Donef("wrote generated source to %s", outDir)
	return nil
}

// deriveName turns an input file name like "person.schema.json" into a
// Go-ish export candidate ("Person"); reify's own sanitize pass still
// runs on whatever comes out, so this only needs to be a reasonable
// first guess.
func deriveName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".schema")
	if base == "" {
		return "Root"
	}
	return strings.ToUpper(base[:1]) + base[1:]
}
