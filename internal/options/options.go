// Package options resolves free-text input into selectable option sets for
// the tag, student and degree pickers.
package options

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Option is the shared label/value pair every select consumes.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Capitalize upper-cases the first letter of each word, the one formatting
// rule applied to option labels.
func Capitalize(text string) string {
	words := strings.Split(text, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// Capitalized builds an option whose label is the capitalized value.
func Capitalized(value string) Option {
	return Option{Label: Capitalize(value), Value: value}
}
