// Package common holds naming and banner helpers shared by the artifact
// generators.
package common

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// ToPascalCase renders s as a PascalCase word sequence.
func ToPascalCase(s string) string {
	return strcase.ToCamel(strings.TrimSpace(s))
}

// SanitizeIdentifier turns an arbitrary human-readable name into a valid
// C# identifier: PascalCase, no punctuation, a leading underscore when the
// name would otherwise start with a digit.
func SanitizeIdentifier(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '_', r == '-', unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, s)

	id := ToPascalCase(cleaned)
	if id == "" {
		return "_"
	}
	if unicode.IsDigit(rune(id[0])) {
		return "_" + id
	}
	return id
}

// IndexedIdentifier appends a zero-based sequence index to a sanitized
// prefix, for names materialized from a range generator.
func IndexedIdentifier(prefix string, index int) string {
	base := SanitizeIdentifier(prefix)
	if base == "_" {
		base = "Usage"
	}
	return base + itoa(index)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}
