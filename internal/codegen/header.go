package codegen

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/guilty-go/guilty/internal/ir"
)

// Generated file header. The first line follows the convention recognized by
// the Go toolchain (^// Code generated .* DO NOT EDIT\.$); the second carries
// the content-addressed spec hash used for staleness checks.
const headerFormat = "// Code generated by guilty %s. DO NOT EDIT.\n// Spec: %s:%s\n\n"

var specHashPattern = regexp.MustCompile(`// Spec: ` + regexp.QuoteMeta(ir.DomainSpec) + `:([0-9a-f]{64})`)

func writeHeader(buf *bytes.Buffer, hash string) {
	fmt.Fprintf(buf, headerFormat, ir.ToolVersion, ir.DomainSpec, hash)
}

// ExtractSpecHash returns the spec hash recorded in a generated file, or ""
// if the data carries no recognizable header. Used by incremental generation
// to decide whether an output file is already current.
func ExtractSpecHash(data []byte) string {
	m := specHashPattern.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}
