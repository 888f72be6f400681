package vestaboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/codes"
)

// Subscription links an installation of the caller's installable to a board.
type Subscription struct {
	ID           string       `json:"_id"`
	Created      string       `json:"_created"`
	Title        *string      `json:"title"`
	Icon         *string      `json:"icon"`
	Installation Installation `json:"installation"`
	Boards       []BoardRef   `json:"boards"`
}

// Installation is the tenant installation a subscription belongs to.
type Installation struct {
	ID          string       `json:"_id"`
	Installable Installable `json:"installable"`
}

// Installable identifies the integration the API key pair was issued to.
type Installable struct {
	ID string `json:"_id"`
}

// BoardRef identifies a board reachable through a subscription.
type BoardRef struct {
	ID string `json:"_id"`
}

type subscriptionsResponse struct {
	Subscriptions []Subscription `json:"subscriptions"`
}

// Subscriptions lists every subscription visible to the API key pair, in the order
// the platform returns them.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "vestaboard.Subscriptions")
	defer span.End()

	started := time.Now()
	var out subscriptionsResponse
	err := c.doJSON(ctx, http.MethodGet, subscriptionsEndpoint, nil, &out)
	c.metrics.observe(OpListSubscriptions, started, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, OpListSubscriptions)
		c.logger.WarnContext(ctx, "vestaboard list subscriptions failed", slog.Any("error", err))
		return nil, &TransportError{Op: OpListSubscriptions, Err: err}
	}
	return out.Subscriptions, nil
}

// SubscriptionIDs returns the IDs of every subscription in response order.
func (c *Client) SubscriptionIDs(ctx context.Context) ([]string, error) {
	subs, err := c.Subscriptions(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// resolveFirst discovers the destination for a send. The result is not cached.
func (c *Client) resolveFirst(ctx context.Context) (string, error) {
	ids, err := c.SubscriptionIDs(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", &TransportError{Op: OpListSubscriptions, Err: ErrNoSubscriptions}
	}
	c.logger.DebugContext(ctx, "vestaboard subscription discovered",
		slog.String("subscription", ids[0]), slog.Int("available", len(ids)))
	return ids[0], nil
}

// resolveSubscription returns the fixed subscription, or discovers one.
func (c *Client) resolveSubscription(ctx context.Context) (string, error) {
	if c.subscription != "" {
		return c.subscription, nil
	}
	return c.resolveFirst(ctx)
}
