package notifications

import (
	"context"

	"github.com/9ssi7/exponent"
)

// PushSender is the one seam between the decision fan-out and the push
// provider. Delivery is always batched; there is no single-message path.
type PushSender interface {
	Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error)
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
