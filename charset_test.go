package vestaboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_Table(t *testing.T) {
	cases := map[rune]CharacterCode{
		' ': 0, 'a': 1, 'm': 13, 'z': 26,
		'1': 27, '9': 35, '0': 36,
		'!': 37, '@': 38, '#': 39, '$': 40, '(': 41, ')': 42,
		'-': 44, '+': 46, '&': 47, '=': 48, ';': 49, ':': 50,
		'\'': 52, '"': 53, '%': 54, ',': 55, '.': 56, '/': 59, '?': 60, '°': 62,
	}
	for r, want := range cases {
		assert.Equal(t, want, Encode(r), "%q", r)
	}
}

func TestEncode_CaseInsensitive(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		assert.Equal(t, Encode(r), Encode(r-'a'+'A'), "%q", r)
	}
}

func TestEncode_UnmappedIsBlank(t *testing.T) {
	for _, r := range []rune{'*', '^', '~', '\n', '{', '€', 'é'} {
		assert.Equal(t, Blank, Encode(r), "%q", r)
	}
}

func TestEncodeString(t *testing.T) {
	assert.Equal(t, []CharacterCode{8, 9, 37}, EncodeString("Hi!"))
	assert.Empty(t, EncodeString(""))
}

func TestDecode(t *testing.T) {
	r, ok := Decode(13)
	assert.True(t, ok)
	assert.Equal(t, 'm', r)

	r, ok = Decode(Blank)
	assert.True(t, ok)
	assert.Equal(t, ' ', r)

	for _, c := range []CharacterCode{43, 45, PoppyRed, Filled, 99, -1} {
		_, ok = Decode(c)
		assert.False(t, ok, "code %d", c)
	}
}
