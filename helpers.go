package vestaboard

import (
	"encoding/json"
	"fmt"
	"os"
)

// String returns a pointer to a string.
func String(v string) *string { return &v }

// ParseCharacters decodes a JSON array of arrays of character codes and checks
// its shape.
func ParseCharacters(data []byte) ([][]CharacterCode, error) {
	var characters [][]CharacterCode
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, fmt.Errorf("vestaboard: parse characters: %w", err)
	}
	if !IsValidGrid(characters) {
		return nil, ErrInvalidGrid
	}
	return characters, nil
}

// ReadCharactersFile reads a JSON grid from path; see ParseCharacters.
func ReadCharactersFile(path string) ([][]CharacterCode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vestaboard: read characters file: %w", err)
	}
	return ParseCharacters(data)
}
