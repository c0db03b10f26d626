package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed spec identity.
// Version suffix enables future algorithm migration.
const DomainSpec = "guilty/spec/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SpecHash computes the content-addressed hash of a compiled spec set.
// The hash is stable across runs given the same declarations.
//
// Everything that reaches the emitted source is part of the identity:
// declaration order is significant (reordering consts reorders the emitted
// methods), and doc strings are included because they are emitted as
// comments. Generated file headers carry OutputHash, which additionally
// folds in the emission settings.
func SpecHash(traits []TraitSpec, impls []ImplSpec) (string, error) {
	traitList := make([]any, len(traits))
	for i, t := range traits {
		traitList[i] = t.toCanonicalMap()
	}
	implList := make([]any, len(impls))
	for i, s := range impls {
		implList[i] = s.toCanonicalMap()
	}

	obj := map[string]any{
		"ir_version": IRVersion,
		"traits":     traitList,
		"impls":      implList,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("SpecHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSpec, canonical), nil
}

// MustSpecHash is like SpecHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSpecHash(traits []TraitSpec, impls []ImplSpec) string {
	hash, err := SpecHash(traits, impls)
	if err != nil {
		panic(err)
	}
	return hash
}

// GenSettings are the emission settings that shape generated bytes beyond
// the declarations themselves.
type GenSettings struct {
	Package string
	Export  bool
	Imports []string
}

// OutputHash computes the identity recorded in a generated file header: the
// spec hash of the declarations combined with the settings that change the
// emitted bytes. A package rename, export toggle, or import edit therefore
// invalidates existing output just like a declaration edit does.
func OutputHash(traits []TraitSpec, impls []ImplSpec, settings GenSettings) (string, error) {
	specHash, err := SpecHash(traits, impls)
	if err != nil {
		return "", err
	}

	imports := make([]any, len(settings.Imports))
	for i, path := range settings.Imports {
		imports[i] = path
	}

	obj := map[string]any{
		"spec_hash": specHash,
		"package":   settings.Package,
		"export":    settings.Export,
		"imports":   imports,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("OutputHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSpec, canonical), nil
}

// MustOutputHash is like OutputHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustOutputHash(traits []TraitSpec, impls []ImplSpec, settings GenSettings) string {
	hash, err := OutputHash(traits, impls, settings)
	if err != nil {
		panic(err)
	}
	return hash
}

func (t TraitSpec) toCanonicalMap() map[string]any {
	consts := make([]any, len(t.Consts))
	for i, c := range t.Consts {
		m := map[string]any{
			"name": c.Name,
			"type": c.Type,
		}
		if c.Default != "" {
			m["default"] = c.Default
		}
		if c.Doc != "" {
			m["doc"] = c.Doc
		}
		consts[i] = m
	}
	m := map[string]any{
		"name":   t.Name,
		"consts": consts,
	}
	if t.Doc != "" {
		m["doc"] = t.Doc
	}
	return m
}

func (s ImplSpec) toCanonicalMap() map[string]any {
	consts := make([]any, len(s.Consts))
	for i, c := range s.Consts {
		m := map[string]any{
			"name":  c.Name,
			"value": c.Value,
		}
		if c.Type != "" {
			m["type"] = c.Type
		}
		if c.Doc != "" {
			m["doc"] = c.Doc
		}
		consts[i] = m
	}
	m := map[string]any{
		"name":   s.Name,
		"consts": consts,
	}
	if s.Trait != "" {
		m["trait"] = s.Trait
	}
	if s.Doc != "" {
		m["doc"] = s.Doc
	}
	return m
}
