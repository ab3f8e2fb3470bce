/*
File: kscope/lexer/lexer_utils.go
Author: Akash Maji
Contact: akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strconv"
	"unicode"
)

// isWhitespace checks if the given byte is a whitespace character.
// Uses Unicode's definition of whitespace, which includes:
//   - Space, tab, newline, carriage return, form feed, vertical tab
//
// Parameters:
//   - curr: The byte to check
//
// Returns:
//   - bool: true if curr is whitespace, false otherwise
func isWhitespace(curr byte) bool {
	return unicode.IsSpace(rune(curr))
}

// isAlphanumeric checks if the given byte is an alphanumeric character.
// This includes both letters (a-z, A-Z) and digits (0-9).
//
// Parameters:
//   - curr: The byte to check
//
// Returns:
//   - bool: true if curr is a letter or digit, false otherwise
func isAlphanumeric(curr byte) bool {
	return isAlpha(curr) || isNumeric(curr)
}

// isNumeric checks if the given byte is a numeric digit (0-9).
//
// Parameters:
//   - curr: The byte to check
//
// Returns:
//   - bool: true if curr is a digit, false otherwise
func isNumeric(curr byte) bool {
	return curr >= '0' && curr <= '9'
}

// isAlpha checks if the given byte is an alphabetic character (a-z, A-Z).
//
// Parameters:
//   - curr: The byte to check
//
// Returns:
//   - bool: true if curr is a letter, false otherwise
func isAlpha(curr byte) bool {
	return (curr >= 'a' && curr <= 'z') || (curr >= 'A' && curr <= 'Z')
}

// parseDouble converts a numeric spelling to a float64 with strtod
// semantics: if the whole string does not parse, the longest prefix that
// does parse supplies the value, and a string with no valid prefix yields 0.
// The number scanner consumes dots greedily, so spellings like "1.2.3" or
// a bare "." reach this function.
//
// Parameters:
//   - literal: The scanned numeric spelling
//
// Returns:
//   - float64: The converted value
func parseDouble(literal string) float64 {
	if v, err := strconv.ParseFloat(literal, 64); err == nil {
		return v
	}
	for end := len(literal) - 1; end > 0; end-- {
		if v, err := strconv.ParseFloat(literal[:end], 64); err == nil {
			return v
		}
	}
	return 0
}
