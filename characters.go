package vestaboard

import "context"

// Color and special character codes that have no text equivalent. They can be
// placed in a grid directly or in text as {NN} escapes.
const (
	PoppyRed  CharacterCode = 63
	Orange    CharacterCode = 64
	Yellow    CharacterCode = 65
	Green     CharacterCode = 66
	ParisBlue CharacterCode = 67
	Violet    CharacterCode = 68
	White     CharacterCode = 69
	Black     CharacterCode = 70
	Filled    CharacterCode = 71
)

// SendCharacters posts a raw 6×22 grid, each code placed 1:1 on the board.
// Any other shape fails with ErrInvalidGrid before a request is made.
func (c *Client) SendCharacters(ctx context.Context, characters [][]CharacterCode) (*UpdateResult, error) {
	return c.Send(ctx, CharactersPayload(characters))
}

// SendCharactersToSubscription is a convenience to target a specific subscription.
func (c *Client) SendCharactersToSubscription(ctx context.Context, subscriptionID string, characters [][]CharacterCode) (*UpdateResult, error) {
	return c.SendTo(ctx, subscriptionID, CharactersPayload(characters))
}

// SendGrid posts a formatted grid.
func (c *Client) SendGrid(ctx context.Context, g Grid) (*UpdateResult, error) {
	return c.Send(ctx, GridPayload(g))
}

// SendLines formats up to six lines with j and posts them as a grid.
func (c *Client) SendLines(ctx context.Context, lines []string, j Justification) (*UpdateResult, error) {
	g, err := FormatGrid(lines, j)
	if err != nil {
		return nil, err
	}
	return c.SendGrid(ctx, g)
}

// Fill returns a grid with every bit set to code.
func Fill(code CharacterCode) Grid {
	var g Grid
	for i := range g {
		for j := range g[i] {
			g[i][j] = code
		}
	}
	return g
}
