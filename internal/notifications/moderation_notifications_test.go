package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/9ssi7/exponent"

	"parkspot/internal/domain/storage"
	"parkspot/internal/domain/submissions"
	"parkspot/internal/moderation"
)

type fakeSender struct {
	published [][]*exponent.Message
}

func (f *fakeSender) Publish(ctx context.Context, msgs []*exponent.Message) ([]*exponent.MessageResponse, error) {
	f.published = append(f.published, msgs)
	return nil, nil
}

type fakeTokenStore struct {
	tokens map[int64][]string
}

func (s *fakeTokenStore) AddOrUpdatePushToken(ctx context.Context, userID int64, token string, deviceInfo json.RawMessage) error {
	return nil
}

func (s *fakeTokenStore) RemovePushToken(ctx context.Context, userID int64, token string) error {
	return nil
}

func (s *fakeTokenStore) RemoveTokensByTokenList(ctx context.Context, tokens []string) error {
	return nil
}

func (s *fakeTokenStore) GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error) {
	return s.tokens, nil
}

func testSubmission(status moderation.Status) *submissions.Submission {
	return &submissions.Submission{
		ID:        5,
		OwnerID:   7,
		Name:      "Riverside Commons",
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestSendModerationDecisionWithoutDevicesIsNotAFailure(t *testing.T) {
	push := &fakeSender{}
	store := &storage.Container{PushTokens: &fakeTokenStore{tokens: map[int64][]string{}}}

	err := SendModerationDecision(context.Background(), push, store, testSubmission(moderation.StatusApproved), moderation.StatusApproved)
	if err != nil {
		t.Fatalf("owner without devices must not be an error, got %v", err)
	}
	if len(push.published) != 0 {
		t.Error("nothing should be published without tokens")
	}
}

func TestSendModerationDecisionPushesOncePerDevice(t *testing.T) {
	push := &fakeSender{}
	store := &storage.Container{PushTokens: &fakeTokenStore{
		tokens: map[int64][]string{7: {"tok-a", "tok-b", "tok-a"}},
	}}

	err := SendModerationDecision(context.Background(), push, store, testSubmission(moderation.StatusRejected), moderation.StatusRejected)
	if err != nil {
		t.Fatal(err)
	}
	if len(push.published) != 1 {
		t.Fatalf("published %d batches, want 1", len(push.published))
	}
	if got := len(push.published[0]); got != 2 {
		t.Errorf("duplicate tokens must collapse: %d messages, want 2", got)
	}
	if title := push.published[0][0].Title; title != "Park rejected" {
		t.Errorf("title = %q", title)
	}
}

func TestSendModerationDecisionRejectsPendingDecision(t *testing.T) {
	push := &fakeSender{}
	store := &storage.Container{PushTokens: &fakeTokenStore{
		tokens: map[int64][]string{7: {"tok-a"}},
	}}

	if err := SendModerationDecision(context.Background(), push, store, testSubmission(moderation.StatusPending), moderation.StatusPending); err == nil {
		t.Error("pending is not a decision; expected an error")
	}
}
