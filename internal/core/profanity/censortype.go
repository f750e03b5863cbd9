package profanity

import (
	"strings"

	perr "profanity/internal/platform/errors"
)

// CensorType selects how a matched word is rewritten
type CensorType int

const (
	// Word replaces the whole word with the grawlix string
	Word CensorType = iota
	// WordLength replaces every character with the grawlix char
	WordLength
	// FirstChar replaces only the first character
	FirstChar
	// FirstVowel replaces the first ASCII vowel
	FirstVowel
	// AllVowels replaces every ASCII vowel
	AllVowels
)

var censorNames = [...]string{"word", "word_length", "first_char", "first_vowel", "all_vowels"}

// String returns the snake_case name
func (c CensorType) String() string {
	if c < 0 || int(c) >= len(censorNames) {
		return "invalid"
	}
	return censorNames[c]
}

// Valid reports whether c is one of the defined values
func (c CensorType) Valid() bool { return c >= Word && c <= AllVowels }

// ParseCensorType accepts the snake_case names, case-insensitively.
// Underscores are optional ("wordlength" works)
func ParseCensorType(s string) (CensorType, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "")
	key = strings.ReplaceAll(key, "-", "")
	for i, n := range censorNames {
		if strings.ReplaceAll(n, "_", "") == key {
			return CensorType(i), nil
		}
	}
	return Word, perr.Wrapf(ErrInvalidCensorType, perr.ErrorCodeValidation, "invalid censor type %q", s)
}
