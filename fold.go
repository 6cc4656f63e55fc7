package langid

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lowercases text using unicode aware case mapping.
// cases.Caser is not safe for concurrent use so a new one is created per call.
func Fold(text string) string {
	return cases.Lower(language.Und).String(text)
}
