package vestaboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type payloadKind int

const (
	payloadText payloadKind = iota + 1
	payloadCharacters
)

// Payload is the body of one board update: either text laid out by the platform
// or a 6×22 grid placed 1:1. Build one with TextPayload, CharactersPayload or GridPayload.
type Payload struct {
	kind       payloadKind
	text       string
	characters [][]CharacterCode
}

// TextPayload wraps a text message. The text may contain \n line breaks and
// {NN} character code escapes, e.g. {63} for a red bit.
func TextPayload(text string) Payload {
	return Payload{kind: payloadText, text: text}
}

// CharactersPayload wraps a raw character grid. It must be 6 rows of 22 codes.
func CharactersPayload(characters [][]CharacterCode) Payload {
	return Payload{kind: payloadCharacters, characters: characters}
}

// GridPayload wraps a formatted grid.
func GridPayload(g Grid) Payload {
	return CharactersPayload(g.Codes())
}

// Text returns the text variant and whether the payload is text.
func (p Payload) Text() (string, bool) {
	return p.text, p.kind == payloadText
}

// Characters returns the grid variant and whether the payload is a grid.
func (p Payload) Characters() ([][]CharacterCode, bool) {
	return p.characters, p.kind == payloadCharacters
}

func (p Payload) validate() error {
	switch p.kind {
	case payloadText:
		if !IsValidText(p.text) {
			return ErrInvalidText
		}
	case payloadCharacters:
		if !IsValidGrid(p.characters) {
			return ErrInvalidGrid
		}
	default:
		return ErrInvalidText
	}
	return nil
}

// MarshalJSON emits {"text": ...} or {"characters": [[...], ...]}.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case payloadText:
		return json.Marshal(struct {
			Text string `json:"text"`
		}{p.text})
	case payloadCharacters:
		return json.Marshal(struct {
			Characters [][]CharacterCode `json:"characters"`
		}{p.characters})
	default:
		return nil, errors.New("vestaboard: empty payload")
	}
}

// UpdateResult is the platform's record of an accepted message.
type UpdateResult struct {
	// ID is the message identifier assigned by the platform.
	ID string `json:"id"`
	// Text echoes the message text for text updates; nil for grids.
	Text *string `json:"text"`
	// Created is the creation time as a millisecond Unix timestamp string.
	Created string `json:"created"`
}

// CreatedAt parses Created.
func (r UpdateResult) CreatedAt() (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(r.Created), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

type messageResponse struct {
	Message *UpdateResult `json:"message"`
}

// Send validates p, resolves the destination subscription and posts the update.
// Validation failures return ErrInvalidText or ErrInvalidGrid without touching the
// network; everything after that fails with a *TransportError. Send makes a
// single attempt; retries are up to the caller.
func (c *Client) Send(ctx context.Context, p Payload) (*UpdateResult, error) {
	return c.SendTo(ctx, "", p)
}

// SendTo is Send with an explicit subscription for this call. An empty
// subscriptionID falls back to the client's subscription or discovery.
func (c *Client) SendTo(ctx context.Context, subscriptionID string, p Payload) (*UpdateResult, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "vestaboard.Send")
	defer span.End()

	sub := strings.TrimSpace(subscriptionID)
	if sub == "" {
		var err error
		if sub, err = c.resolveSubscription(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "resolve subscription")
			return nil, err
		}
	}
	span.SetAttributes(attribute.String("vestaboard.subscription", sub))

	if err := c.pace(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pace")
		return nil, &TransportError{Op: OpSendMessage, Err: err}
	}
	started := time.Now()
	var out messageResponse
	endpoint := subscriptionsEndpoint + "/" + url.PathEscape(sub) + "/message"
	err := c.doJSON(ctx, http.MethodPost, endpoint, p, &out)
	if err == nil && out.Message == nil {
		err = errors.New("decode response: missing message")
	}
	c.metrics.observe(OpSendMessage, started, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, OpSendMessage)
		c.logger.WarnContext(ctx, "vestaboard send failed",
			slog.String("subscription", sub), slog.Any("error", err))
		return nil, &TransportError{Op: OpSendMessage, Err: err}
	}
	c.logger.DebugContext(ctx, "vestaboard message accepted",
		slog.String("subscription", sub), slog.String("message", out.Message.ID))
	return out.Message, nil
}
