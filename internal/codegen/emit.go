package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/guilty-go/guilty/internal/ir"
)

// DefaultFileName is the output file name when the config does not set one.
const DefaultFileName = "guilty_gen.go"

// Options controls code emission.
type Options struct {
	// Package is the package clause of the generated file.
	Package string

	// Imports lists extra import paths copied into the generated file, for
	// const types like time.Duration that live outside the universe scope.
	Imports []string

	// Export title-cases const names that start with a lowercase letter, so
	// declarations can use unexported spelling while the emitted accessors
	// are part of the package API.
	Export bool
}

// File is one generated source file.
type File struct {
	Name string
	Data []byte
}

// Generate expands a compiled spec set into a single Go source file.
//
// Each trait becomes an interface with one zero-argument method per const.
// Each impl becomes a set of zero-argument value-receiver methods on the
// named type, one per const, returning the declared value as the declared
// type. A trait-bound impl also gets a satisfaction assertion so the host
// compiler verifies the method set against the interface.
//
// Expansion is a pure syntactic transform: values are emitted verbatim and
// never evaluated. Output is deterministic for a given spec set (declaration
// order is preserved) and always gofmt-formatted.
func Generate(traits []ir.TraitSpec, impls []ir.ImplSpec, opts Options) (*File, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("codegen: package name is required")
	}

	hash, err := ir.OutputHash(traits, impls, ir.GenSettings{
		Package: opts.Package,
		Export:  opts.Export,
		Imports: opts.Imports,
	})
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	traitByName := make(map[string]*ir.TraitSpec, len(traits))
	for i := range traits {
		traitByName[traits[i].Name] = &traits[i]
	}

	var buf bytes.Buffer
	writeHeader(&buf, hash)
	fmt.Fprintf(&buf, "package %s\n\n", opts.Package)
	writeImports(&buf, opts.Imports)

	for i := range traits {
		if err := writeTrait(&buf, &traits[i], opts); err != nil {
			return nil, err
		}
	}

	for i := range impls {
		if err := writeImpl(&buf, &impls[i], traitByName, opts); err != nil {
			return nil, err
		}
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// A formatting failure means a declared type or value expression is
		// not syntactically valid Go. Report it with the raw source so the
		// offending expression is findable.
		return nil, fmt.Errorf("codegen: generated source does not parse (check type and value expressions): %w", err)
	}

	return &File{Name: DefaultFileName, Data: formatted}, nil
}

func writeImports(buf *bytes.Buffer, imports []string) {
	if len(imports) == 0 {
		return
	}
	buf.WriteString("import (\n")
	for _, path := range imports {
		fmt.Fprintf(buf, "\t%q\n", path)
	}
	buf.WriteString(")\n\n")
}

func writeTrait(buf *bytes.Buffer, trait *ir.TraitSpec, opts Options) error {
	writeDocComment(buf, "", trait.Doc)
	fmt.Fprintf(buf, "type %s interface {\n", trait.Name)
	for _, c := range trait.Consts {
		name := accessorName(c.Name, opts.Export)
		writeDocComment(buf, "\t", c.Doc)
		fmt.Fprintf(buf, "\t%s() %s\n", name, c.Type)
	}
	buf.WriteString("}\n\n")
	return nil
}

func writeImpl(buf *bytes.Buffer, impl *ir.ImplSpec, traits map[string]*ir.TraitSpec, opts Options) error {
	if impl.Trait == "" {
		for _, c := range impl.Consts {
			writeMethod(buf, impl.Name, accessorName(c.Name, opts.Export), c.Type, c.Value, c.Doc)
		}
		return nil
	}

	trait, ok := traits[impl.Trait]
	if !ok {
		return fmt.Errorf("codegen: impl %s references unknown trait %s", impl.Name, impl.Trait)
	}

	// Emit one method per trait const, in trait declaration order, taking
	// the impl's value when declared and the trait default otherwise.
	// Required consts with no impl value are a validation error upstream.
	for _, tc := range trait.Consts {
		value := tc.Default
		doc := tc.Doc
		if c, declared := impl.Const(tc.Name); declared {
			value = c.Value
			if c.Doc != "" {
				doc = c.Doc
			}
		}
		if value == "" {
			return fmt.Errorf("codegen: impl %s has no value for required const %s.%s", impl.Name, trait.Name, tc.Name)
		}
		writeMethod(buf, impl.Name, accessorName(tc.Name, opts.Export), tc.Type, value, doc)
	}

	fmt.Fprintf(buf, "var _ %s = *new(%s)\n\n", trait.Name, impl.Name)
	return nil
}

func writeMethod(buf *bytes.Buffer, recv, name, typ, value, doc string) {
	writeDocComment(buf, "", doc)
	fmt.Fprintf(buf, "func (%s) %s() %s { return %s }\n\n", recv, name, typ, value)
}

// writeDocComment emits a declared doc string verbatim as a comment block.
func writeDocComment(buf *bytes.Buffer, indent, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		fmt.Fprintf(buf, "%s// %s\n", indent, line)
	}
}
