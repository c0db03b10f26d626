// Package ir provides the canonical intermediate representation for guilty.
//
// This package contains type definitions, canonical JSON serialization, and
// spec hashing. All other internal packages import ir; ir imports nothing
// internal. This keeps IR the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Types and values are carried as verbatim Go source expressions; the
//     host compiler is the authority on whether they type-check
//   - All JSON tags use snake_case
//   - Spec hashes use canonical JSON only, never standard json.Marshal
package ir
