package compiler

import (
	"fmt"
	"go/token"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	cuetoken "cuelang.org/go/cue/token"

	"github.com/guilty-go/guilty/internal/ir"
)

// CompileTrait parses a CUE value into a TraitSpec.
// Uses the CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the trait struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`trait: Shape: { ... }`)
//	spec, err := CompileTrait(v.LookupPath(cue.ParsePath("trait.Shape")))
func CompileTrait(v cue.Value) (*ir.TraitSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.TraitSpec{}

	// Trait name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}
	if !token.IsIdentifier(spec.Name) {
		return nil, &CompileError{
			Field:   "trait.name",
			Message: fmt.Sprintf("%q is not a valid Go identifier", spec.Name),
			Pos:     v.Pos(),
		}
	}

	doc, err := optionalString(v, "doc")
	if err != nil {
		return nil, err
	}
	spec.Doc = doc

	// Parse consts (required, at least one).
	constVal := v.LookupPath(cue.ParsePath("const"))
	if !constVal.Exists() {
		return nil, &CompileError{
			Field:   "const",
			Message: "trait must declare at least one const",
			Pos:     v.Pos(),
		}
	}

	iter, err := constVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		entry := iter.Value()

		if !token.IsIdentifier(name) {
			return nil, &CompileError{
				Field:   fmt.Sprintf("const.%s.name", name),
				Message: fmt.Sprintf("%q is not a valid Go identifier", name),
				Pos:     entry.Pos(),
			}
		}

		typeExpr, err := requiredString(entry, "type", fmt.Sprintf("const.%s.type", name))
		if err != nil {
			return nil, err
		}

		defaultExpr, err := optionalString(entry, "default")
		if err != nil {
			return nil, err
		}

		constDoc, err := optionalString(entry, "doc")
		if err != nil {
			return nil, err
		}

		spec.Consts = append(spec.Consts, ir.TraitConst{
			Name:    name,
			Type:    typeExpr,
			Default: defaultExpr,
			Doc:     constDoc,
		})
	}

	if len(spec.Consts) == 0 {
		return nil, &CompileError{
			Field:   "const",
			Message: "trait must declare at least one const",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// CompileImpl parses a CUE value into an ImplSpec.
//
// An impl may reference a trait (its consts then inherit the trait's types
// and defaults) or stand alone, in which case every const must carry an
// explicit type. Trait resolution happens later in Validate, once all
// declarations are loaded.
func CompileImpl(v cue.Value) (*ir.ImplSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.ImplSpec{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}
	if !token.IsIdentifier(spec.Name) {
		return nil, &CompileError{
			Field:   "impl.name",
			Message: fmt.Sprintf("%q is not a valid Go identifier", spec.Name),
			Pos:     v.Pos(),
		}
	}

	traitName, err := optionalString(v, "trait")
	if err != nil {
		return nil, err
	}
	spec.Trait = traitName

	doc, err := optionalString(v, "doc")
	if err != nil {
		return nil, err
	}
	spec.Doc = doc

	constVal := v.LookupPath(cue.ParsePath("const"))
	if !constVal.Exists() {
		return nil, &CompileError{
			Field:   "const",
			Message: "impl must declare at least one const",
			Pos:     v.Pos(),
		}
	}

	iter, err := constVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		entry := iter.Value()

		if !token.IsIdentifier(name) {
			return nil, &CompileError{
				Field:   fmt.Sprintf("const.%s.name", name),
				Message: fmt.Sprintf("%q is not a valid Go identifier", name),
				Pos:     entry.Pos(),
			}
		}

		value, err := requiredString(entry, "value", fmt.Sprintf("const.%s.value", name))
		if err != nil {
			return nil, err
		}

		typeExpr, err := optionalString(entry, "type")
		if err != nil {
			return nil, err
		}

		// Free-standing impls have no trait to supply the type.
		if spec.Trait == "" && typeExpr == "" {
			return nil, &CompileError{
				Field:   fmt.Sprintf("const.%s.type", name),
				Message: "const type is required when the impl has no trait",
				Pos:     entry.Pos(),
			}
		}

		constDoc, err := optionalString(entry, "doc")
		if err != nil {
			return nil, err
		}

		spec.Consts = append(spec.Consts, ir.ConstDecl{
			Name:  name,
			Type:  typeExpr,
			Value: value,
			Doc:   constDoc,
		})
	}

	// Trait-bound impls may legitimately declare zero consts when every
	// trait const has a default; free-standing impls may not.
	if spec.Trait == "" && len(spec.Consts) == 0 {
		return nil, &CompileError{
			Field:   "const",
			Message: "impl must declare at least one const",
			Pos:     v.Pos(),
		}
	}

	return spec, nil
}

// requiredString reads a required string field from a CUE struct.
func requiredString(v cue.Value, path, field string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(path))
	if !fieldVal.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", path),
			Pos:     v.Pos(),
		}
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// optionalString reads an optional string field from a CUE struct.
func optionalString(v cue.Value, path string) (string, error) {
	fieldVal := v.LookupPath(cue.ParsePath(path))
	if !fieldVal.Exists() {
		return "", nil
	}
	s, err := fieldVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     cuetoken.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
