// Package golang is the one target emit/ ships with: it renders a
// codemodel.CodeModule as a single Go source file, string-concatenation
// style (fmt.Fprintf into a strings.Builder), matching the way the
// teacher's own cmd/schemagen assembles generated source — never
// text/template.
package golang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kaptinlin/bricolage/codemodel"
	"github.com/kaptinlin/bricolage/emit"
)

// Target renders a CodeModule as Go source under the given package name.
type Target struct {
	PackageName string
}

// New returns a Target that emits into the given Go package.
func New(packageName string) *Target {
	return &Target{PackageName: packageName}
}

func init() {
	emit.Register("go", New("generated"))
}

// Render implements emit.Renderer. It writes a single file,
// "bricolage_generated.go", to sink.
func (t *Target) Render(module *codemodel.CodeModule, sink emit.Sink) error {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", t.PackageName)

	imports := map[string]bool{
		"github.com/kaptinlin/bricolage/bric":    true,
		"github.com/kaptinlin/bricolage/pointer": true,
	}
	for imp := range module.Imports {
		imports[imp] = true
	}
	sorted := make([]string, 0, len(imports))
	for imp := range imports {
		sorted = append(sorted, imp)
	}
	sort.Strings(sorted)
	b.WriteString("import (\n")
	for _, imp := range sorted {
		fmt.Fprintf(&b, "\t%q\n", imp)
	}
	b.WriteString(")\n\n")

	writeRuntimeHelpers(&b)

	for _, decl := range module.Types {
		renderDecl(&b, decl)
	}

	return sink.Write("bricolage_generated.go", []byte(b.String()))
}

// writeRuntimeHelpers emits the small set of generic encode helpers every
// generated file shares, so each struct/array/optional field's encode
// expression can call a single shared function instead of inlining a
// loop at every call site.
func writeRuntimeHelpers(b *strings.Builder) {
	b.WriteString(`func encodeArray[T any](items []T, enc func(T) bric.Bric) bric.Bric {
	elems := make([]bric.Bric, len(items))
	for i, item := range items {
		elems[i] = enc(item)
	}
	return bric.Arr(elems...)
}

func encodeOptional[T any](opt *T, enc func(T) bric.Bric) bric.Bric {
	if opt == nil {
		return bric.Null()
	}
	return enc(*opt)
}

func encodeMap(m map[string]bric.Bric) bric.Bric {
	obj := bric.NewObj()
	for k, v := range m {
		obj.Set(k, v)
	}
	return bric.ObjOf(obj)
}

`)
}

func renderDecl(b *strings.Builder, d codemodel.CodeDecl) {
	switch d.Kind() {
	case codemodel.DeclStruct:
		renderStruct(b, d)
	case codemodel.DeclSum:
		renderSum(b, d)
	case codemodel.DeclAlias:
		renderAlias(b, d)
	case codemodel.DeclEnum:
		renderEnum(b, d)
	}
	for _, nested := range d.Nested {
		renderDecl(b, nested)
	}
}

func accessName(name string, access codemodel.Access) string {
	if access == codemodel.AccessExported {
		return name
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// goType renders the Go type syntax for a CodeType.
func goType(t codemodel.CodeType) string {
	switch t.Kind() {
	case codemodel.CodeTypePrimitive:
		p, _ := t.AsPrimitive()
		switch p {
		case codemodel.PrimitiveBool:
			return "bool"
		case codemodel.PrimitiveInt:
			return "int64"
		case codemodel.PrimitiveDouble:
			return "float64"
		case codemodel.PrimitiveString:
			return "string"
		case codemodel.PrimitiveNull:
			return "struct{}"
		default:
			return "bric.Bric"
		}
	case codemodel.CodeTypeNamed:
		name, _ := t.AsNamed()
		return name
	case codemodel.CodeTypeArray:
		elem, _ := t.Elem()
		return "[]" + goType(elem)
	case codemodel.CodeTypeOptional:
		elem, _ := t.Elem()
		return "*" + goType(elem)
	case codemodel.CodeTypeTuple:
		parts, _ := t.Tuple()
		fields := make([]string, len(parts))
		for i, p := range parts {
			fields[i] = fmt.Sprintf("F%d %s", i, goType(p))
		}
		return "struct {\n\t\t" + strings.Join(fields, "\n\t\t") + "\n\t}"
	case codemodel.CodeTypeIndirect:
		elem, _ := t.Elem()
		return "*" + goType(elem)
	case codemodel.CodeTypeMap:
		return "map[string]bric.Bric"
	default:
		return "bric.Bric"
	}
}

func renderAlias(b *strings.Builder, d codemodel.CodeDecl) {
	// A rename-only alias (target is itself Named) uses a true Go type
	// alias so it inherits the target's methods rather than needing its
	// own; every other shape gets a defined type plus bind methods.
	if _, ok := d.Target.AsNamed(); ok {
		fmt.Fprintf(b, "type %s = %s\n\n", d.Name, goType(d.Target))
		return
	}

	if d.Doc != "" {
		fmt.Fprintf(b, "// %s\n", d.Doc)
	}
	fmt.Fprintf(b, "type %s %s\n\n", d.Name, goType(d.Target))

	fmt.Fprintf(b, "func (v %s) EncodeBric() bric.Bric {\n", d.Name)
	fmt.Fprintf(b, "\treturn %s\n", encodeExprForType(d.Target, castToUnderlying(d.Target, "v")))
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (v *%s) DecodeBric(b bric.Bric, at pointer.Pointer) error {\n", d.Name)
	writeDecodeViaUnderlying(b, d.Target, d.Name, "*v", "b", "at")
	b.WriteString("\treturn nil\n}\n\n")
}

// castToUnderlying wraps expr in an explicit conversion to its own
// primitive underlying type when t is a Primitive — needed because the
// declaration's Go type is a distinct named type over that primitive,
// and passing a named type where Go expects its unnamed underlying type
// (e.g. bric.Str's string parameter) requires an explicit conversion.
// Composite CodeTypes (array, tuple, ...) render as Go type-literal
// syntax, which is already unnamed, so no conversion is needed there.
func castToUnderlying(t codemodel.CodeType, expr string) string {
	if _, ok := t.AsPrimitive(); ok {
		return fmt.Sprintf("%s(%s)", goType(t), expr)
	}
	return expr
}

// writeDecodeViaUnderlying decodes into dst, which has a declaration's own
// named type: for a Primitive target it decodes into a same-shaped
// temporary of the plain underlying type and then converts, for the same
// reason castToUnderlying exists on the encode side.
func writeDecodeViaUnderlying(b *strings.Builder, t codemodel.CodeType, typeName, dst, srcExpr, ptrExpr string) {
	if _, ok := t.AsPrimitive(); ok {
		fmt.Fprintf(b, "\tvar raw %s\n", goType(t))
		writeDecodeForType(b, t, typeName, "raw", srcExpr, ptrExpr)
		fmt.Fprintf(b, "\t%s = %s(raw)\n", dst, strings.TrimPrefix(typeName, "*"))
		return
	}
	writeDecodeForType(b, t, typeName, dst, srcExpr, ptrExpr)
}

func renderStruct(b *strings.Builder, d codemodel.CodeDecl) {
	if d.Doc != "" {
		fmt.Fprintf(b, "// %s\n", d.Doc)
	}
	fmt.Fprintf(b, "type %s struct {\n", d.Name)
	for _, f := range d.Fields {
		fmt.Fprintf(b, "\t%s %s `json:\"%s\"`\n", accessName(f.Name, codemodel.AccessExported), goType(f.Type), f.JSONName)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (v %s) EncodeBric() bric.Bric {\n", d.Name)
	b.WriteString("\tobj := bric.NewObj()\n")
	for _, f := range d.Fields {
		if f.JSONName == "" {
			continue // the captured additionalProperties field has no single key
		}
		fmt.Fprintf(b, "\tobj.Set(%q, %s)\n", f.JSONName, encodeExprForType(f.Type, "v."+f.Name))
	}
	for _, f := range d.Fields {
		if f.JSONName == "" {
			fmt.Fprintf(b, "\tfor k, val := range v.%s {\n\t\tobj.Set(k, val)\n\t}\n", f.Name)
		}
	}
	b.WriteString("\treturn bric.ObjOf(obj)\n}\n\n")

	fmt.Fprintf(b, "func (v *%s) DecodeBric(b bric.Bric, at pointer.Pointer) error {\n", d.Name)
	b.WriteString("\tobj, ok := b.AsObj()\n")
	fmt.Fprintf(b, "\tif !ok {\n\t\treturn bric.NewUnexpectedType(at, %q, \"object\", b.Kind().String())\n\t}\n", d.Name)
	var known []string
	for _, f := range d.Fields {
		if f.JSONName == "" {
			continue
		}
		known = append(known, f.JSONName)
		fmt.Fprintf(b, "\tif raw, present := obj.Get(%q); present {\n", f.JSONName)
		writeDecodeForType(b, f.Type, d.Name, "v."+f.Name, "raw", fmt.Sprintf("at.Key(%q)", f.JSONName))
		if f.Required {
			fmt.Fprintf(b, "\t} else {\n\t\treturn bric.NewMissingRequired(at, %q, %q)\n\t}\n", d.Name, f.JSONName)
		} else {
			b.WriteString("\t}\n")
		}
	}
	if d.Conformances["RejectAdditionalProperties"] {
		b.WriteString("\tfor pair := obj.Oldest(); pair != nil; pair = pair.Next() {\n")
		b.WriteString("\t\tswitch pair.Key {\n")
		for _, k := range known {
			fmt.Fprintf(b, "\t\tcase %q:\n", k)
		}
		b.WriteString("\t\tdefault:\n")
		fmt.Fprintf(b, "\t\t\treturn bric.NewAdditionalPropertyForbidden(at, %q, pair.Key)\n", d.Name)
		b.WriteString("\t\t}\n\t}\n")
	} else {
		for _, f := range d.Fields {
			if f.JSONName == "" {
				fmt.Fprintf(b, "\tv.%s = map[string]bric.Bric{}\n", f.Name)
				b.WriteString("\tfor pair := obj.Oldest(); pair != nil; pair = pair.Next() {\n")
				b.WriteString("\t\tswitch pair.Key {\n")
				for _, k := range known {
					fmt.Fprintf(b, "\t\tcase %q:\n", k)
				}
				b.WriteString("\t\tdefault:\n")
				fmt.Fprintf(b, "\t\t\tv.%s[pair.Key] = pair.Value\n", f.Name)
				b.WriteString("\t\t}\n\t}\n")
			}
		}
	}
	if d.AssertNotType != "" {
		fmt.Fprintf(b, "\tvar neg %s\n", d.AssertNotType)
		b.WriteString("\tif neg.DecodeBric(b, at) == nil {\n")
		fmt.Fprintf(b, "\t\treturn bric.NewUnexpectedType(at, %q, \"value excluded by not\", \"matched\")\n", d.Name)
		b.WriteString("\t}\n")
	}
	b.WriteString("\treturn nil\n}\n\n")

	if d.Conformances["Equatable"] {
		writeEqual(b, d.Name)
	}
}

func renderSum(b *strings.Builder, d codemodel.CodeDecl) {
	if d.Doc != "" {
		fmt.Fprintf(b, "// %s\n", d.Doc)
	}
	fmt.Fprintf(b, "type %s struct {\n\tCase string\n", d.Name)
	for _, c := range d.Cases {
		if c.Payload != nil {
			fmt.Fprintf(b, "\t%s %s\n", c.Name, goType(codemodel.OptionalOf(*c.Payload)))
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (v %s) EncodeBric() bric.Bric {\n\tswitch v.Case {\n", d.Name)
	for _, c := range d.Cases {
		fmt.Fprintf(b, "\tcase %q:\n", c.Name)
		if c.Payload != nil {
			fmt.Fprintf(b, "\t\treturn %s\n", encodeExprForType(*c.Payload, "(*v."+c.Name+")"))
		} else {
			b.WriteString("\t\treturn bric.Null()\n")
		}
	}
	b.WriteString("\t}\n\treturn bric.Null()\n}\n\n")

	fmt.Fprintf(b, "func (v *%s) DecodeBric(b bric.Bric, at pointer.Pointer) error {\n", d.Name)
	b.WriteString("\tvar causes []error\n")
	if d.Exclusive {
		b.WriteString("\tvar matched []int\n")
	}
	for i, c := range d.Cases {
		if c.Payload == nil {
			continue
		}
		fmt.Fprintf(b, "\tvar c%d %s\n", i, goType(*c.Payload))
		fmt.Fprintf(b, "\tif err%d := decodeInto%d(&c%d, b, at); err%d == nil {\n", i, i, i, i)
		fmt.Fprintf(b, "\t\tv.Case = %q\n\t\tv.%s = &c%d\n", c.Name, c.Name, i)
		if d.Exclusive {
			b.WriteString("\t\t// oneOf: continue checking remaining cases to enforce exclusivity below\n")
			fmt.Fprintf(b, "\t\tmatched = append(matched, %d)\n", i)
		} else {
			b.WriteString("\t\treturn nil\n")
		}
		b.WriteString("\t} else {\n")
		fmt.Fprintf(b, "\t\tcauses = append(causes, err%d)\n", i)
		b.WriteString("\t}\n")
	}
	if d.Exclusive {
		b.WriteString("\tif len(matched) > 1 {\n")
		fmt.Fprintf(b, "\t\treturn bric.NewExactlyOneViolated(at, %q, matched)\n", d.Name)
		b.WriteString("\t}\n")
		b.WriteString("\tif v.Case == \"\" {\n")
		fmt.Fprintf(b, "\t\treturn bric.NewNoAlternativeMatched(at, %q, causes)\n", d.Name)
		b.WriteString("\t}\n\treturn nil\n")
	} else {
		fmt.Fprintf(b, "\treturn bric.NewNoAlternativeMatched(at, %q, causes)\n", d.Name)
	}
	b.WriteString("}\n\n")

	for i, c := range d.Cases {
		if c.Payload == nil {
			continue
		}
		fmt.Fprintf(b, "func decodeInto%d(dst *%s, b bric.Bric, at pointer.Pointer) error {\n", i, goType(*c.Payload))
		writeDecodeForType(b, *c.Payload, d.Name, "(*dst)", "b", "at")
		b.WriteString("\treturn nil\n}\n\n")
	}

	if d.Conformances["Equatable"] {
		writeEqual(b, d.Name)
	}
}

// writeEqual emits a structural Equal method built directly on Bric.Equal,
// so a conformance recorded by the reifier (spec.md §4.F's Equatable trait)
// is always backed by a real method rather than left advertised-but-unused.
func writeEqual(b *strings.Builder, name string) {
	fmt.Fprintf(b, "func (v %s) Equal(other %s) bool {\n", name, name)
	b.WriteString("\treturn v.EncodeBric().Equal(other.EncodeBric())\n}\n\n")
}

func renderEnum(b *strings.Builder, d codemodel.CodeDecl) {
	raw := goType(codemodel.PrimitiveType(d.RawType))
	fmt.Fprintf(b, "type %s %s\n\n", d.Name, raw)
	b.WriteString("const (\n")
	for _, c := range d.EnumCases {
		fmt.Fprintf(b, "\t%s%s %s = %s\n", d.Name, c.Name, d.Name, literalAsGo(raw, c.Literal))
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(b, "func (v %s) EncodeBric() bric.Bric {\n", d.Name)
	fmt.Fprintf(b, "\treturn %s\n", encodeExprForType(codemodel.PrimitiveType(d.RawType), castToUnderlying(codemodel.PrimitiveType(d.RawType), "v")))
	b.WriteString("}\n\n")

	fmt.Fprintf(b, "func (v *%s) DecodeBric(b bric.Bric, at pointer.Pointer) error {\n", d.Name)
	writeDecodeViaUnderlying(b, codemodel.PrimitiveType(d.RawType), d.Name, "*v", "b", "at")
	validCases := make([]string, len(d.EnumCases))
	for i, c := range d.EnumCases {
		validCases[i] = fmt.Sprintf("%s%s", d.Name, c.Name)
	}
	b.WriteString("\tswitch *v {\n")
	fmt.Fprintf(b, "\tcase %s:\n\t\treturn nil\n", strings.Join(validCases, ", "))
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\treturn bric.NewInvalidEnumValue(at, %q, b)\n}\n\n", d.Name)
}

// literalAsGo converts an encoded Bric literal (JSON text) into a Go
// constant expression for the given raw Go type.
func literalAsGo(rawType, literal string) string {
	switch rawType {
	case "string":
		return literal // JSON string literal quoting matches Go string literal quoting
	default:
		return literal
	}
}

func encodeExprForType(t codemodel.CodeType, expr string) string {
	switch t.Kind() {
	case codemodel.CodeTypePrimitive:
		p, _ := t.AsPrimitive()
		switch p {
		case codemodel.PrimitiveBool:
			return fmt.Sprintf("bric.Bool(%s)", expr)
		case codemodel.PrimitiveInt, codemodel.PrimitiveDouble:
			return fmt.Sprintf("bric.Num(float64(%s))", expr)
		case codemodel.PrimitiveString:
			return fmt.Sprintf("bric.Str(%s)", expr)
		case codemodel.PrimitiveNull:
			return "bric.Null()"
		default:
			return expr
		}
	case codemodel.CodeTypeNamed:
		return fmt.Sprintf("(%s).EncodeBric()", expr)
	case codemodel.CodeTypeArray:
		elem, _ := t.Elem()
		return fmt.Sprintf("encodeArray(%s, func(e %s) bric.Bric { return %s })", expr, goType(elem), encodeExprForType(elem, "e"))
	case codemodel.CodeTypeOptional:
		elem, _ := t.Elem()
		return fmt.Sprintf("encodeOptional(%s, func(e %s) bric.Bric { return %s })", expr, goType(elem), encodeExprForType(elem, "e"))
	case codemodel.CodeTypeIndirect:
		elem, _ := t.Elem()
		return fmt.Sprintf("encodeOptional(%s, func(e %s) bric.Bric { return %s })", expr, goType(elem), encodeExprForType(elem, "e"))
	case codemodel.CodeTypeMap:
		return fmt.Sprintf("encodeMap(%s)", expr)
	default:
		return "bric.Null()"
	}
}

// writeDecodeForType writes the decode logic for a single CodeType into
// b, assigning into dst (an addressable Go expression) from a bric.Bric
// expression srcExpr, using ptrExpr for the pointer.Pointer to attach to
// any BindError raised.
func writeDecodeForType(b *strings.Builder, t codemodel.CodeType, typeName, dst, srcExpr, ptrExpr string) {
	switch t.Kind() {
	case codemodel.CodeTypePrimitive:
		p, _ := t.AsPrimitive()
		switch p {
		case codemodel.PrimitiveBool:
			fmt.Fprintf(b, "\t{\n\t\tval, ok := %s.AsBool()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"bool\", %s.Kind().String())\n\t\t}\n\t\t%s = val\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr, dst)
		case codemodel.PrimitiveInt:
			fmt.Fprintf(b, "\t{\n\t\tval, ok := %s.AsNum()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"integer\", %s.Kind().String())\n\t\t}\n\t\t%s = int64(val)\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr, dst)
		case codemodel.PrimitiveDouble:
			fmt.Fprintf(b, "\t{\n\t\tval, ok := %s.AsNum()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"number\", %s.Kind().String())\n\t\t}\n\t\t%s = val\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr, dst)
		case codemodel.PrimitiveString:
			fmt.Fprintf(b, "\t{\n\t\tval, ok := %s.AsStr()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"string\", %s.Kind().String())\n\t\t}\n\t\t%s = val\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr, dst)
		case codemodel.PrimitiveNull:
			fmt.Fprintf(b, "\tif !%s.IsNull() {\n\t\treturn bric.NewUnexpectedType(%s, %q, \"null\", %s.Kind().String())\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr)
		default:
			fmt.Fprintf(b, "\t%s = %s\n", dst, srcExpr)
		}
	case codemodel.CodeTypeNamed:
		fmt.Fprintf(b, "\tif err := (%s).DecodeBric(%s, %s); err != nil {\n\t\treturn err\n\t}\n", "&"+dst, srcExpr, ptrExpr)
	case codemodel.CodeTypeArray:
		elem, _ := t.Elem()
		fmt.Fprintf(b, "\t{\n\t\targ, ok := %s.AsArr()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"array\", %s.Kind().String())\n\t\t}\n\t\t%s = make(%s, len(arg))\n\t\tfor i, elem := range arg {\n", srcExpr, ptrExpr, typeName, srcExpr, dst, goType(t))
		writeDecodeForType(b, elem, typeName, dst+"[i]", "elem", ptrExpr+".Index(i)")
		b.WriteString("\t\t}\n\t}\n")
	case codemodel.CodeTypeOptional:
		elem, _ := t.Elem()
		fmt.Fprintf(b, "\tif !%s.IsNull() {\n\t\tvar opt %s\n", srcExpr, goType(elem))
		writeDecodeForType(b, elem, typeName, "opt", srcExpr, ptrExpr)
		fmt.Fprintf(b, "\t\t%s = &opt\n\t}\n", dst)
	case codemodel.CodeTypeIndirect:
		elem, _ := t.Elem()
		fmt.Fprintf(b, "\t{\n\t\tvar ind %s\n", goType(elem))
		writeDecodeForType(b, elem, typeName, "ind", srcExpr, ptrExpr)
		fmt.Fprintf(b, "\t\t%s = &ind\n\t}\n", dst)
	case codemodel.CodeTypeMap:
		fmt.Fprintf(b, "\t{\n\t\targ, ok := %s.AsObj()\n\t\tif !ok {\n\t\t\treturn bric.NewUnexpectedType(%s, %q, \"object\", %s.Kind().String())\n\t\t}\n\t\t%s = map[string]bric.Bric{}\n\t\tfor pair := arg.Oldest(); pair != nil; pair = pair.Next() {\n\t\t\t%s[pair.Key] = pair.Value\n\t\t}\n\t}\n", srcExpr, ptrExpr, typeName, srcExpr, dst, dst)
	default:
		fmt.Fprintf(b, "\t%s = %s\n", dst, srcExpr)
	}
}
