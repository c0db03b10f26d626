package codegen

import (
	"go/format"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilty-go/guilty/internal/ir"
)

func shapeSpecs() ([]ir.TraitSpec, []ir.ImplSpec) {
	traits := []ir.TraitSpec{{
		Name: "Shape",
		Doc:  "Shape is a closed plane figure.",
		Consts: []ir.TraitConst{
			{Name: "Sides", Type: "int"},
			{Name: "Label", Type: "string", Default: `"shape"`},
		},
	}}
	impls := []ir.ImplSpec{
		{
			Name:  "Square",
			Trait: "Shape",
			Consts: []ir.ConstDecl{
				{Name: "Sides", Value: "4"},
				{Name: "Label", Value: `"square"`},
			},
		},
		{
			Name:  "Triangle",
			Trait: "Shape",
			Consts: []ir.ConstDecl{
				{Name: "Sides", Value: "3"},
				// Label omitted: falls back to the trait default.
			},
		},
	}
	return traits, impls
}

func TestGenerateTraitInterface(t *testing.T) {
	traits, impls := shapeSpecs()

	file, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	src := string(file.Data)
	assert.Contains(t, src, "package shapes\n")
	assert.Contains(t, src, "type Shape interface {\n\tSides() int\n\tLabel() string\n}")
	assert.Contains(t, src, "// Shape is a closed plane figure.")
}

func TestGenerateImplMethods(t *testing.T) {
	traits, impls := shapeSpecs()

	file, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	src := string(file.Data)
	assert.Contains(t, src, "func (Square) Sides() int { return 4 }")
	assert.Contains(t, src, `func (Square) Label() string { return "square" }`)
	assert.Contains(t, src, "var _ Shape = *new(Square)")
	assert.Contains(t, src, "var _ Shape = *new(Triangle)")
}

func TestGenerateDefaultFallback(t *testing.T) {
	traits, impls := shapeSpecs()

	file, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	// Triangle omits Label, so the trait default is expanded.
	assert.Contains(t, string(file.Data), `func (Triangle) Label() string { return "shape" }`)
}

func TestGenerateFreeStandingImpl(t *testing.T) {
	impls := []ir.ImplSpec{{
		Name: "Color",
		Consts: []ir.ConstDecl{
			{Name: "Red", Type: "string", Value: `"#ff0000"`, Doc: "Red is the red channel mask."},
			{Name: "Bits", Type: "int", Value: "24"},
		},
	}}

	file, err := Generate(nil, impls, Options{Package: "colors"})
	require.NoError(t, err)

	src := string(file.Data)
	assert.Contains(t, src, `func (Color) Red() string { return "#ff0000" }`)
	assert.Contains(t, src, "func (Color) Bits() int { return 24 }")
	assert.Contains(t, src, "// Red is the red channel mask.")
	assert.NotContains(t, src, "var _") // no trait, no assertion
}

func TestGenerateHeader(t *testing.T) {
	traits, impls := shapeSpecs()

	file, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	src := string(file.Data)
	assert.True(t, strings.HasPrefix(src, "// Code generated by guilty "+ir.ToolVersion+". DO NOT EDIT.\n"))
	assert.Equal(t, ir.MustOutputHash(traits, impls, ir.GenSettings{Package: "shapes"}), ExtractSpecHash(file.Data))
	assert.Equal(t, DefaultFileName, file.Name)
}

func TestGenerateHeaderTracksEmission(t *testing.T) {
	traits, impls := shapeSpecs()

	base, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	// Anything that changes the emitted bytes must change the header hash:
	// a renamed package, a toggled export mode, and an edited doc string all
	// produce different output.
	renamed, err := Generate(traits, impls, Options{Package: "figures"})
	require.NoError(t, err)
	assert.NotEqual(t, ExtractSpecHash(base.Data), ExtractSpecHash(renamed.Data))

	exported, err := Generate(traits, impls, Options{Package: "shapes", Export: true})
	require.NoError(t, err)
	assert.NotEqual(t, ExtractSpecHash(base.Data), ExtractSpecHash(exported.Data))

	redoc, redocImpls := shapeSpecs()
	redoc[0].Doc = "Shape is any closed plane figure."
	redocFile, err := Generate(redoc, redocImpls, Options{Package: "shapes"})
	require.NoError(t, err)
	assert.NotEqual(t, ExtractSpecHash(base.Data), ExtractSpecHash(redocFile.Data))
}

func TestGenerateDeterministic(t *testing.T) {
	traits, impls := shapeSpecs()

	first, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	second, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	assert.Equal(t, string(first.Data), string(second.Data))
}

func TestGenerateOutputIsGofmtClean(t *testing.T) {
	traits, impls := shapeSpecs()

	file, err := Generate(traits, impls, Options{Package: "shapes"})
	require.NoError(t, err)

	formatted, err := format.Source(file.Data)
	require.NoError(t, err)
	assert.Equal(t, string(file.Data), string(formatted))
}

func TestGenerateImports(t *testing.T) {
	impls := []ir.ImplSpec{{
		Name: "Job",
		Consts: []ir.ConstDecl{
			{Name: "Timeout", Type: "time.Duration", Value: "5 * time.Second"},
		},
	}}

	file, err := Generate(nil, impls, Options{
		Package: "jobs",
		Imports: []string{"time"},
	})
	require.NoError(t, err)

	src := string(file.Data)
	assert.Contains(t, src, "\t\"time\"\n")
	assert.Contains(t, src, "func (Job) Timeout() time.Duration { return 5 * time.Second }")
}

func TestGenerateExportOption(t *testing.T) {
	impls := []ir.ImplSpec{{
		Name: "Config",
		Consts: []ir.ConstDecl{
			{Name: "maxRetries", Type: "int", Value: "3"},
			{Name: "Window", Type: "int", Value: "10"},
		},
	}}

	file, err := Generate(nil, impls, Options{Package: "cfg", Export: true})
	require.NoError(t, err)

	src := string(file.Data)
	assert.Contains(t, src, "func (Config) MaxRetries() int { return 3 }")
	assert.Contains(t, src, "func (Config) Window() int { return 10 }")
	assert.NotContains(t, src, "maxRetries")
}

func TestGenerateRequiresPackage(t *testing.T) {
	_, err := Generate(nil, nil, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package name is required")
}

func TestGenerateRejectsMalformedValue(t *testing.T) {
	impls := []ir.ImplSpec{{
		Name: "Broken",
		Consts: []ir.ConstDecl{
			{Name: "X", Type: "int", Value: "4 +"},
		},
	}}

	_, err := Generate(nil, impls, Options{Package: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not parse")
}

func TestGenerateUnknownTrait(t *testing.T) {
	impls := []ir.ImplSpec{{
		Name:   "Square",
		Trait:  "Polygon",
		Consts: []ir.ConstDecl{{Name: "Sides", Value: "4"}},
	}}

	_, err := Generate(nil, impls, Options{Package: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown trait")
}

func TestGenerateMissingRequiredConst(t *testing.T) {
	traits := []ir.TraitSpec{{
		Name:   "Shape",
		Consts: []ir.TraitConst{{Name: "Sides", Type: "int"}},
	}}
	impls := []ir.ImplSpec{{Name: "Blob", Trait: "Shape"}}

	_, err := Generate(traits, impls, Options{Package: "p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required const")
}

func TestExtractSpecHashNoHeader(t *testing.T) {
	assert.Empty(t, ExtractSpecHash([]byte("package foo\n")))
}

func TestAccessorName(t *testing.T) {
	tests := []struct {
		name   string
		export bool
		want   string
	}{
		{"Sides", false, "Sides"},
		{"Sides", true, "Sides"},
		{"maxRetries", false, "maxRetries"},
		{"maxRetries", true, "MaxRetries"},
		{"x", true, "X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accessorName(tt.name, tt.export))
		})
	}
}
