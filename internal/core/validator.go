package core

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultMinLength is the shortest text, in characters, worth analyzing
const DefaultMinLength = 10

// ValidateInput cleans raw and checks it is long enough to analyze. Invalid
// UTF-8 is dropped and the text is NFC-normalized before the length check, so
// the check sees the characters the classifier will see.
func ValidateInput(raw string, minLength int) (string, error) {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	text := strings.TrimSpace(norm.NFC.String(strings.ToValidUTF8(raw, "")))
	if text == "" {
		return "", &ValidationError{Reason: ReasonEmpty, MinLength: minLength}
	}
	if utf8.RuneCountInString(text) < minLength {
		return "", &ValidationError{Reason: ReasonTooShort, MinLength: minLength}
	}
	return text, nil
}
