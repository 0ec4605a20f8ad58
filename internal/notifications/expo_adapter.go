package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// ExpoAdapter is the production PushSender. It is a thin wrapper over the
// Expo client so the fan-out can be exercised in tests with a fake sender
// instead of a live Expo account.
type ExpoAdapter struct {
	client *exponent.Client
}

func NewExpoAdapter(c *exponent.Client) *ExpoAdapter {
	return &ExpoAdapter{client: c}
}

func (a *ExpoAdapter) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	return a.client.Publish(ctx, msgs)
}
