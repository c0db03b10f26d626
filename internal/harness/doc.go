// Package harness provides conformance testing for the generator pipeline.
//
// A scenario pairs a directory of CUE declarations with generation settings;
// running it produces the generated Go source, which golden tests compare
// byte for byte against testdata/golden.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: shapes_basic
//	description: "Defaults expand into impls that omit a const"
//	specs_dir: specs/shapes
//	package: shapes
//	export: false
//	imports: []
//
// specs_dir is relative to the scenario file. The golden file is
// testdata/golden/{name}.golden.
//
// # Determinism
//
// Generator output is deterministic for a given spec set: the header hash is
// content-addressed and emission preserves declaration order, so golden
// comparison needs no normalization.
package harness
