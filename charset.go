package vestaboard

import "unicode"

// CharacterCode is an index into the board's fixed glyph set.
// See https://docs.vestaboard.com/characters for the full reference.
type CharacterCode int

// Blank is the empty bit; unmapped characters also encode to Blank.
const Blank CharacterCode = 0

// charCodes is the supported alphabet. Codes 43, 45, 51, 57, 58 and 61 have no
// text equivalent and codes above 62 are colors or specials only reachable
// through grids or {NN} escapes.
var charCodes = map[rune]CharacterCode{
	' ': 0,
	'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 6, 'g': 7, 'h': 8, 'i': 9,
	'j': 10, 'k': 11, 'l': 12, 'm': 13, 'n': 14, 'o': 15, 'p': 16, 'q': 17,
	'r': 18, 's': 19, 't': 20, 'u': 21, 'v': 22, 'w': 23, 'x': 24, 'y': 25,
	'z': 26,
	'1': 27, '2': 28, '3': 29, '4': 30, '5': 31, '6': 32, '7': 33, '8': 34,
	'9': 35, '0': 36,
	'!': 37, '@': 38, '#': 39, '$': 40, '(': 41, ')': 42,
	'-': 44, '+': 46, '&': 47, '=': 48, ';': 49, ':': 50,
	'\'': 52, '"': 53, '%': 54, ',': 55, '.': 56,
	'/': 59, '?': 60, '°': 62,
}

var codeChars = func() map[CharacterCode]rune {
	m := make(map[CharacterCode]rune, len(charCodes))
	for r, c := range charCodes {
		m[c] = r
	}
	return m
}()

// Encode maps a single character to its code. It never fails: characters
// outside the supported alphabet map to Blank.
func Encode(r rune) CharacterCode {
	return charCodes[unicode.ToLower(r)]
}

// EncodeString maps every rune of s through Encode.
func EncodeString(s string) []CharacterCode {
	out := make([]CharacterCode, 0, len(s))
	for _, r := range s {
		out = append(out, Encode(r))
	}
	return out
}

// Decode returns the lower-case character for code, or false when the code has
// no printable equivalent (colors, fillers, out-of-range values).
func Decode(code CharacterCode) (rune, bool) {
	r, ok := codeChars[code]
	return r, ok
}
