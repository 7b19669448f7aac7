package lifecycle

import (
	"testing"
	"time"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"

	"github.com/stretchr/testify/require"
)

func newSession(status model.SessionStatus, maxRounds int, expiresAt *time.Time) model.BiddingSession {
	return model.BiddingSession{
		SessionID:    "session1",
		ParticipantA: "user1",
		ParticipantB: "user2",
		Status:       status,
		MaxRounds:    maxRounds,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    expiresAt,
	}
}

func bidsFor(counts map[string]int) []model.Bid {
	now := time.Now().UTC()
	var history []model.Bid
	amount := 100.0
	for userID, n := range counts {
		for i := 0; i < n; i++ {
			history = append(history, model.Bid{
				BidID:     userID + "-bid",
				SessionID: "session1",
				UserID:    userID,
				Amount:    amount,
				Origin:    model.OriginManual,
				CreatedAt: now,
			})
			amount *= 1.2
		}
	}
	return history
}

func TestShouldFinalize(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		session  model.BiddingSession
		history  []model.Bid
		expected bool
	}{
		{
			name:     "no_deadline_no_bids",
			session:  newSession(model.StatusActive, 3, nil),
			history:  nil,
			expected: false,
		},
		{
			name:     "deadline_passed",
			session:  newSession(model.StatusActive, 3, &past),
			history:  bidsFor(map[string]int{"user1": 1}),
			expected: true,
		},
		{
			name:     "deadline_passed_no_bids",
			session:  newSession(model.StatusActive, 3, &past),
			history:  nil,
			expected: true,
		},
		{
			name:     "deadline_in_future",
			session:  newSession(model.StatusActive, 3, &future),
			history:  bidsFor(map[string]int{"user1": 1, "user2": 1}),
			expected: false,
		},
		{
			name:     "both_participants_at_cap",
			session:  newSession(model.StatusActive, 3, nil),
			history:  bidsFor(map[string]int{"user1": 3, "user2": 3}),
			expected: true,
		},
		{
			name:     "only_one_participant_at_cap",
			session:  newSession(model.StatusActive, 3, nil),
			history:  bidsFor(map[string]int{"user1": 3, "user2": 2}),
			expected: false,
		},
		{
			name:    "single_bidder_never_finalizes_on_rounds",
			session: newSession(model.StatusActive, 1, nil),
			// one bidder at the cap but the opponent never bid
			history:  bidsFor(map[string]int{"user1": 1}),
			expected: false,
		},
		{
			name:     "terminal_session_never_due",
			session:  newSession(model.StatusFinalized, 3, &past),
			history:  bidsFor(map[string]int{"user1": 3, "user2": 3}),
			expected: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, ShouldFinalize(tc.session, tc.history, now))
		})
	}
}

func TestTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		from        model.SessionStatus
		to          model.SessionStatus
		expectError bool
	}{
		{name: "active_to_finalized", from: model.StatusActive, to: model.StatusFinalized},
		{name: "active_to_expired", from: model.StatusActive, to: model.StatusExpired},
		{name: "active_to_cancelled", from: model.StatusActive, to: model.StatusCancelled},
		{name: "active_to_active", from: model.StatusActive, to: model.StatusActive, expectError: true},
		{name: "finalized_to_cancelled", from: model.StatusFinalized, to: model.StatusCancelled, expectError: true},
		{name: "expired_to_finalized", from: model.StatusExpired, to: model.StatusFinalized, expectError: true},
		{name: "cancelled_to_active", from: model.StatusCancelled, to: model.StatusActive, expectError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			session := newSession(tc.from, 3, nil)
			updated, err := Transition(session, tc.to)
			if tc.expectError {
				require.ErrorIs(t, err, biddingerrors.ErrInvalidTransition)
				// failed transition leaves the session unchanged
				require.Equal(t, tc.from, updated.Status)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.to, updated.Status)
				// input session is not mutated
				require.Equal(t, tc.from, session.Status)
			}
		})
	}
}
