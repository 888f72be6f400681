package vestaboard

import "context"

// SendText posts a text message. The platform handles layout: text longer than the
// board (or with too many line breaks) is truncated by the platform. Supports \n line
// breaks and {NN} escapes, e.g. "{63}{63} Hello\nWorld!".
func (c *Client) SendText(ctx context.Context, text string) (*UpdateResult, error) {
	return c.Send(ctx, TextPayload(text))
}

// SendTextToSubscription is a convenience to target a specific subscription.
func (c *Client) SendTextToSubscription(ctx context.Context, subscriptionID, text string) (*UpdateResult, error) {
	return c.SendTo(ctx, subscriptionID, TextPayload(text))
}

// SendTextSimple sends text using a Background context.
func (c *Client) SendTextSimple(text string) (*UpdateResult, error) {
	return c.SendText(context.Background(), text)
}
