package vestaboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidText(t *testing.T) {
	valid := []string{
		"",
		"My text",
		"HELLO world 2024",
		"!@#$()-+&=;:'\"%,./?°",
		"{63}{63} Hello\nWorld!{1}",
		"tab\tand\r\nbreaks",
		alphabetRun(),
	}
	for _, s := range valid {
		assert.True(t, IsValidText(s), "%q", s)
	}

	invalid := []string{
		"My text****",
		"{123}",
		"{}",
		"{6",
		"6}",
		"{a}",
		"under_score",
		"caret^",
		"café",
		"emoji 🙂",
		"[brackets]",
		"a\u00a0b",
		"thin\u2009space",
	}
	for _, s := range invalid {
		assert.False(t, IsValidText(s), "%q", s)
	}
}

func alphabetRun() string {
	b := make([]byte, 80)
	for i := range b {
		b[i] = 'a' + byte(i%26)
	}
	return string(b)
}

func grid(rows, cols int) [][]CharacterCode {
	out := make([][]CharacterCode, rows)
	for i := range out {
		out[i] = make([]CharacterCode, cols)
	}
	return out
}

func TestIsValidGrid(t *testing.T) {
	assert.True(t, IsValidGrid(grid(6, 22)))
	assert.True(t, IsValidGrid(Fill(PoppyRed).Codes()))

	assert.False(t, IsValidGrid(nil))
	assert.False(t, IsValidGrid(grid(5, 22)))
	assert.False(t, IsValidGrid(grid(7, 22)))
	assert.False(t, IsValidGrid(grid(6, 21)))
	assert.False(t, IsValidGrid(grid(6, 23)))

	ragged := grid(6, 22)
	ragged[3] = make([]CharacterCode, 21)
	assert.False(t, IsValidGrid(ragged))

	ragged = grid(6, 22)
	ragged[5] = append(ragged[5], 0)
	assert.False(t, IsValidGrid(ragged))
}

func TestIsValidGrid_IgnoresCodeRange(t *testing.T) {
	g := grid(6, 22)
	g[0][0] = -5
	g[5][21] = 1000
	assert.True(t, IsValidGrid(g))
}
