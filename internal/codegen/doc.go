// Package codegen expands compiled declarations into Go source.
//
// The expansion is the whole point of the tool: a declared
// (name, type, value) triple becomes a zero-argument method returning the
// value as the stated type, so constants behave as if they were attached to
// the type. Traits become interfaces over the same accessors.
//
// The emitted file is gofmt-formatted, carries a standard "DO NOT EDIT"
// header, and records the spec hash so stale output is detectable without
// re-reading the spec.
package codegen
