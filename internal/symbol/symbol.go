// Package symbol recognises Taiwan stock codes in chat text and canonicalises them.
package symbol

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultSuffix is appended to bare codes (listed market).
const DefaultSuffix = ".TW"

var stockCodePattern = regexp.MustCompile(`^\d{4}(\.(TW|TWO))?$`)

// IsStockCode reports whether token is a 4-digit code, optionally suffixed with .TW or .TWO.
func IsStockCode(token string) bool {
	return stockCodePattern.MatchString(strings.TrimSpace(token))
}

// Normalize appends DefaultSuffix when token has no market suffix.
func Normalize(token string) string {
	token = strings.TrimSpace(token)
	if !strings.Contains(token, ".") {
		return token + DefaultSuffix
	}
	return token
}

// Extract returns the normalized stock codes found in text, in order of first appearance.
// Tokens that don't look like a stock code are ignored.
func Extract(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，' || unicode.IsSpace(r)
	})

	seen := make(map[string]bool, len(tokens))
	var codes []string
	for _, t := range tokens {
		if !IsStockCode(t) {
			continue
		}
		code := Normalize(t)
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}
