// Package compiler turns CUE declarations into IR.
//
// Two declaration forms are supported:
//
//	trait: Shape: {
//	    doc: "A closed plane figure."
//	    const: {
//	        Sides: {type: "int"}
//	        Label: {type: "string", default: "\"shape\""}
//	    }
//	}
//
//	impl: Square: {
//	    trait: "Shape"
//	    const: {
//	        Sides: {value: "4"}
//	    }
//	}
//
// CompileTrait and CompileImpl handle one declaration each and report shape
// errors with CUE source positions. Validate runs over the full compiled set
// and resolves trait references, required-const coverage, and name
// collisions. Type checking of values is left entirely to the Go compiler on
// the generated output.
package compiler
