package vestaboard

import (
	"strings"
	"unicode"
)

const (
	// Rows is the number of lines on a board.
	Rows = 6
	// Columns is the number of character bits per line.
	Columns = 22
)

// Row is one 22-wide line of character codes.
type Row [Columns]CharacterCode

// Grid is a full 6×22 board, the canonical payload shape accepted by the device.
type Grid [Rows]Row

// Codes converts the grid to the nested slice form used on the wire.
func (g Grid) Codes() [][]CharacterCode {
	out := make([][]CharacterCode, Rows)
	for i := range g {
		row := g[i]
		out[i] = row[:]
	}
	return out
}

// String renders the grid as text, one line per row. Codes without a printable
// character are shown as '▒'.
func (g Grid) String() string {
	var b strings.Builder
	for i, row := range g {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row.String())
	}
	return b.String()
}

// String renders the row as text.
func (r Row) String() string {
	var b strings.Builder
	for _, c := range r {
		ch, ok := Decode(c)
		if !ok {
			ch = '▒'
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// Justification positions text shorter than a row.
type Justification int

const (
	// JustifyDefault behaves exactly like JustifyCenter.
	JustifyDefault Justification = iota
	JustifyLeft
	JustifyRight
	JustifyCenter
)

func (j Justification) String() string {
	switch j {
	case JustifyLeft:
		return "left"
	case JustifyRight:
		return "right"
	case JustifyCenter:
		return "center"
	default:
		return "default"
	}
}

// ParseJustification accepts "left", "right" and "center" in any case.
// Anything else yields JustifyDefault.
func ParseJustification(s string) Justification {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return JustifyLeft
	case "right":
		return JustifyRight
	case "center", "centre":
		return JustifyCenter
	default:
		return JustifyDefault
	}
}

// filler marks padding; it is never run through Encode.
const filler = '*'

// FormatRow converts text into a single row. Input longer than 22 characters is
// cut at 22; shorter input is padded per j. Centered text puts the extra blank on
// the right when the padding is odd. FormatRow does not validate: call
// IsValidText first, or use ConvertLine.
func FormatRow(text string, j Justification) Row {
	runes := []rune(text)
	if len(runes) > Columns {
		runes = runes[:Columns]
	}
	pad := Columns - len(runes)
	var left int
	switch j {
	case JustifyLeft:
		left = 0
	case JustifyRight:
		left = pad
	default:
		left = pad / 2
	}

	aligned := make([]rune, 0, Columns)
	for i := 0; i < left; i++ {
		aligned = append(aligned, filler)
	}
	aligned = append(aligned, runes...)
	for len(aligned) < Columns {
		aligned = append(aligned, filler)
	}

	var row Row
	for i, r := range aligned {
		if r == filler {
			row[i] = Blank
			continue
		}
		row[i] = Encode(unicode.ToLower(r))
	}
	return row
}

// ConvertLine validates text and formats it into a row.
func ConvertLine(text string, j Justification) (Row, error) {
	if !IsValidText(text) {
		return Row{}, ErrInvalidText
	}
	return FormatRow(text, j), nil
}

// FormatGrid builds a board from up to six lines, each formatted with j.
// Missing lines are left blank.
func FormatGrid(lines []string, j Justification) (Grid, error) {
	var g Grid
	if len(lines) > Rows {
		return g, ErrInvalidGrid
	}
	for i, line := range lines {
		row, err := ConvertLine(line, j)
		if err != nil {
			return Grid{}, err
		}
		g[i] = row
	}
	return g, nil
}
