package compiler

import (
	"fmt"
	"go/token"

	"github.com/guilty-go/guilty/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidIdentifier  = "E101" // name is not a valid Go identifier
	ErrMissingType        = "E102" // const missing a type
	ErrMissingValue       = "E103" // const missing a value
	ErrDuplicateName      = "E104" // duplicate trait/impl/const name
	ErrUnknownTrait       = "E105" // impl references an undeclared trait
	ErrUnimplementedConst = "E106" // required trait const not implemented
	ErrInvalidPackage     = "E107" // output package name not an identifier
	ErrConstNotInTrait    = "E108" // impl const not declared by its trait
	ErrConstTypeConflict  = "E109" // trait-bound impl const restates a type
)

// ValidationError represents a cross-declaration validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled spec set for consistency.
// Returns all errors found (does not fail-fast).
//
// Per-declaration shape errors (missing fields, bad identifiers) are caught
// earlier by CompileTrait/CompileImpl; Validate handles what needs the whole
// set: name collisions and trait/impl resolution. Whether a value expression
// is assignable to its stated type is deliberately NOT checked; the host
// compiler reports that on the generated code.
func Validate(traits []ir.TraitSpec, impls []ir.ImplSpec) []ValidationError {
	var errs []ValidationError

	traitByName := make(map[string]*ir.TraitSpec, len(traits))
	for i := range traits {
		t := &traits[i]
		if _, dup := traitByName[t.Name]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("trait.%s", t.Name),
				Message: fmt.Sprintf("duplicate trait name: %q", t.Name),
				Code:    ErrDuplicateName,
			})
			continue
		}
		traitByName[t.Name] = t
		errs = append(errs, validateConstNames(fmt.Sprintf("trait.%s", t.Name), traitConstNames(t))...)
	}

	implNames := make(map[string]bool, len(impls))
	for i := range impls {
		s := &impls[i]
		field := fmt.Sprintf("impl.%s", s.Name)

		// Two impl blocks for one receiver type would emit colliding methods.
		if implNames[s.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate impl for type %q", s.Name),
				Code:    ErrDuplicateName,
			})
		}
		implNames[s.Name] = true

		errs = append(errs, validateConstNames(field, implConstNames(s))...)

		if s.Trait == "" {
			continue
		}

		trait, ok := traitByName[s.Trait]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".trait",
				Message: fmt.Sprintf("unknown trait %q", s.Trait),
				Code:    ErrUnknownTrait,
			})
			continue
		}

		errs = append(errs, validateImplAgainstTrait(s, trait)...)
	}

	return errs
}

// ValidatePackageName checks that a configured output package name is usable.
func ValidatePackageName(name string) []ValidationError {
	if token.IsIdentifier(name) {
		return nil
	}
	return []ValidationError{{
		Field:   "package",
		Message: fmt.Sprintf("%q is not a valid Go package name", name),
		Code:    ErrInvalidPackage,
	}}
}

// validateImplAgainstTrait checks trait coverage in both directions:
// every impl const must exist on the trait, and every trait const without a
// default must exist on the impl.
func validateImplAgainstTrait(s *ir.ImplSpec, trait *ir.TraitSpec) []ValidationError {
	var errs []ValidationError
	field := fmt.Sprintf("impl.%s", s.Name)

	for _, c := range s.Consts {
		if _, ok := trait.Const(c.Name); !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.const.%s", field, c.Name),
				Message: fmt.Sprintf("trait %q does not declare const %q", trait.Name, c.Name),
				Code:    ErrConstNotInTrait,
			})
			continue
		}

		// The trait is the single source of the type; a restated one would
		// either be redundant or drift from it.
		if c.Type != "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.const.%s.type", field, c.Name),
				Message: fmt.Sprintf("const %q takes its type from trait %q and must not restate it", c.Name, trait.Name),
				Code:    ErrConstTypeConflict,
			})
		}
	}

	for _, tc := range trait.Consts {
		if tc.Default != "" {
			continue
		}
		if _, ok := s.Const(tc.Name); !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.const.%s", field, tc.Name),
				Message: fmt.Sprintf("const %q of trait %q has no default and must be implemented", tc.Name, trait.Name),
				Code:    ErrUnimplementedConst,
			})
		}
	}

	return errs
}

// validateConstNames reports duplicate const names within one block.
// CUE unifies duplicate labels in a single file, but two spec files
// contributing to the same block can still collide after loading.
func validateConstNames(field string, names []string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s.const.%s", field, name),
				Message: fmt.Sprintf("duplicate const name: %q", name),
				Code:    ErrDuplicateName,
			})
		}
		seen[name] = true
	}
	return errs
}

func traitConstNames(t *ir.TraitSpec) []string {
	names := make([]string, len(t.Consts))
	for i, c := range t.Consts {
		names[i] = c.Name
	}
	return names
}

func implConstNames(s *ir.ImplSpec) []string {
	names := make([]string, len(s.Consts))
	for i, c := range s.Consts {
		names[i] = c.Name
	}
	return names
}
