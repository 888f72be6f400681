// Package vestaboard provides a Go SDK for the Vestaboard Read/Write platform API.
//
// A Vestaboard is a split-flap display with 6 rows of 22 character bits. Content is
// posted to a subscription (the link between an installable's API key pair and a
// board) either as free text, which the platform lays out itself, or as a 6×22 grid
// of character codes placed 1:1 on the board.
//
// Features
//   - API key/secret authentication
//   - Optional fixed subscription ID, otherwise the first subscription is discovered per call
//   - Character code table, row formatting with left/right/center justification
//   - Text and grid validation before any network traffic
//   - Flat error taxonomy: ErrInvalidText, ErrInvalidGrid, *TransportError
//   - Optional slog logging, Prometheus metrics and OpenTelemetry tracing
//
// Official API Documentation:
//   - https://docs.vestaboard.com/methods
//   - https://docs.vestaboard.com/characters
package vestaboard
