package moderation

import "testing"

func TestEvaluatePending(t *testing.T) {
	tests := []struct {
		name      string
		upvotes   int
		downvotes int
		want      Status
	}{
		{"no votes", 0, 0, StatusPending},
		{"unanimous approval at threshold", 10, 0, StatusApproved},
		{"one short of approval count", 9, 1, StatusPending},
		{"approval with dissent", 14, 6, StatusApproved},
		{"enough upvotes but ratio too low", 10, 5, StatusPending},
		{"ratio just under boundary", 12, 6, StatusPending}, // 12/18 ≈ 0.667
		{"unanimous rejection at threshold", 0, 5, StatusRejected},
		{"one short of rejection count", 0, 4, StatusPending},
		{"rejection with dissent", 3, 7, StatusRejected},
		{"enough downvotes but ratio too low", 4, 5, StatusPending},
		{"split vote", 3, 4, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(StatusPending, tt.upvotes, tt.downvotes); got != tt.want {
				t.Errorf("Evaluate(pending, %d, %d) = %q, want %q",
					tt.upvotes, tt.downvotes, got, tt.want)
			}
		})
	}
}

func TestEvaluateRatioBoundaries(t *testing.T) {
	// 7/10 is exactly the decision ratio and must count as decided.
	if got := Evaluate(StatusPending, 14, 6); got != StatusApproved {
		t.Errorf("14 up / 6 down = ratio 0.70 exactly, want approved, got %q", got)
	}
	if got := Evaluate(StatusPending, 3, 7); got != StatusRejected {
		t.Errorf("3 up / 7 down = ratio 0.70 exactly, want rejected, got %q", got)
	}
}

func TestEvaluateApprovalPrecedence(t *testing.T) {
	// Both absolute thresholds met; approval must win regardless of order of
	// magnitude. (The ratio tests make this combination unreachable in
	// practice, but the rule is ordered on purpose.)
	if got := Evaluate(StatusPending, 30, 5); got != StatusApproved {
		t.Errorf("want approval to take precedence, got %q", got)
	}
}

func TestEvaluateTerminalIsFrozen(t *testing.T) {
	tallies := []struct{ up, down int }{
		{0, 0},
		{0, 100},
		{100, 0},
		{3, 4},
	}

	for _, tt := range tallies {
		if got := Evaluate(StatusApproved, tt.up, tt.down); got != StatusApproved {
			t.Errorf("Evaluate(approved, %d, %d) = %q, approved is terminal", tt.up, tt.down, got)
		}
		if got := Evaluate(StatusRejected, tt.up, tt.down); got != StatusRejected {
			t.Errorf("Evaluate(rejected, %d, %d) = %q, rejected is terminal", tt.up, tt.down, got)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("deleted").Valid() {
		t.Error("unknown status should not be valid")
	}
}
