package notifications

import (
	"context"
	"fmt"
	"strconv"

	"github.com/9ssi7/exponent"

	"parkspot/internal/domain/storage"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/moderation"
)

// SendModerationDecision pushes the approve/reject outcome to the
// submission owner's registered devices. Called after the moderation
// transaction commits, never inside it.
func SendModerationDecision(ctx context.Context, push PushSender, store *storage.Container, sub *submissions.Submission, decision moderation.Status) error {
	tokensMap, err := store.PushTokens.GetTokensByUserIDs(ctx, []int64{sub.OwnerID})
	if err != nil {
		return err
	}
	// owners without a registered device simply get no push; that is a
	// normal state, not a delivery failure
	tokens := dedupe(tokensMap[sub.OwnerID])
	if len(tokens) == 0 {
		return nil
	}

	var title, body string
	switch decision {
	case moderation.StatusApproved:
		title = "Park approved"
		body = fmt.Sprintf("%q got enough votes and is now public", sub.Name)
	case moderation.StatusRejected:
		title = "Park rejected"
		body = fmt.Sprintf("%q was voted down by the community", sub.Name)
	default:
		return fmt.Errorf("no notification for decision %q", decision)
	}

	parkID := strconv.FormatInt(sub.ID, 10)
	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":    "moderation_decision",
				"park_id": parkID,
				"status":  string(decision),
				"screen":  "parks/" + parkID,
			},
		})
	}

	if _, err := push.Publish(ctx, msgs); err != nil {
		return err
	}
	return nil
}
