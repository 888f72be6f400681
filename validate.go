package vestaboard

import "regexp"

// textPattern accepts the supported alphabet (either case), whitespace for line
// breaks, and inline {N}/{NN} character code escapes resolved by the platform.
var textPattern = regexp.MustCompile(`^(?:[A-Za-z0-9!@#$()\-+&=;:'"%,./?°\s]|\{[0-9]{1,2}\})*$`)

// IsValidText reports whether text only uses characters the board can show.
// Length is not checked; the platform wraps and truncates text messages itself.
func IsValidText(text string) bool {
	return textPattern.MatchString(text)
}

// IsValidGrid reports whether characters is exactly 6 rows of 22 codes.
// Code values are not range checked.
func IsValidGrid(characters [][]CharacterCode) bool {
	if len(characters) != Rows {
		return false
	}
	for _, row := range characters {
		if len(row) != Columns {
			return false
		}
	}
	return true
}
