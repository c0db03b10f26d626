package codegen

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser preserves the tail of the identifier; only word-initial runes
// are upcased, so "maxRetries" becomes "MaxRetries", not "Maxretries".
var titleCaser = cases.Title(language.Und, cases.NoLower)

// accessorName returns the method name emitted for a const declaration.
// With export enabled, a lowercase-initial name is title-cased into the
// exported form.
func accessorName(name string, export bool) string {
	if !export {
		return name
	}
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsLower(r) {
		return name
	}
	return titleCaser.String(name)
}
