package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a new active session
func newSession(sessionID string) model.BiddingSession {
	return model.BiddingSession{
		SessionID:    sessionID,
		ParticipantA: "user1",
		ParticipantB: "user2",
		Status:       model.StatusActive,
		MaxRounds:    3,
		CreatedAt:    time.Now().UTC(),
	}
}

// Helper to create a new Bid
func newBid(bidID, sessionID, userID string, amount float64, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:     bidID,
		SessionID: sessionID,
		UserID:    userID,
		Amount:    amount,
		Origin:    model.OriginManual,
		CreatedAt: createdAt,
	}
}

func TestMemoryStore_CreateAndLoadSession(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	session := newSession("session1")

	require.NoError(t, store.CreateSession(session))

	loaded, err := store.LoadSession("session1")
	require.NoError(t, err)
	require.Equal(t, session, loaded)

	// Duplicate IDs are rejected
	require.Error(t, store.CreateSession(session))

	_, err = store.LoadSession("missing")
	require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
}

func TestMemoryStore_AppendBid(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(newSession("session1")))

	tests := []struct {
		name      string
		bid       model.Bid
		wantError bool
	}{
		{name: "valid_bid", bid: newBid("bid1", "session1", "user1", 100, time.Now()), wantError: false},
		{name: "session_not_found", bid: newBid("bid2", "sessionX", "user1", 50, time.Now()), wantError: true},
		{name: "second_bid_appends", bid: newBid("bid3", "session1", "user2", 110, time.Now()), wantError: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := store.AppendBid(tc.bid)
			if tc.wantError {
				require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
			} else {
				require.NoError(t, err)
				history, err := store.LoadBidHistory(tc.bid.SessionID)
				require.NoError(t, err)
				require.Contains(t, history, tc.bid)
			}
		})
	}
}

func TestMemoryStore_LoadBidHistory(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(newSession("session1")))

	// Empty history is not an error
	history, err := store.LoadBidHistory("session1")
	require.NoError(t, err)
	require.Empty(t, history)

	_, err = store.LoadBidHistory("missing")
	require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)

	// History preserves placement order
	first := newBid("bid1", "session1", "user1", 100, time.Now())
	second := newBid("bid2", "session1", "user2", 110, time.Now().Add(time.Second))
	require.NoError(t, store.AppendBid(first))
	require.NoError(t, store.AppendBid(second))

	history, err = store.LoadBidHistory("session1")
	require.NoError(t, err)
	require.Equal(t, []model.Bid{first, second}, history)

	// Returned slice is a copy; mutating it does not affect the store
	history[0].Amount = 999
	fresh, err := store.LoadBidHistory("session1")
	require.NoError(t, err)
	require.Equal(t, 100.0, fresh[0].Amount)
}

func TestMemoryStore_UpdateSessionStatus(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(newSession("session1")))

	// Successful CAS records the winning bid
	updated, err := store.UpdateSessionStatus("session1", model.StatusActive, model.StatusFinalized, "bid9")
	require.NoError(t, err)
	require.Equal(t, model.StatusFinalized, updated.Status)
	require.Equal(t, "bid9", updated.WinningBidID)

	// Second CAS with a stale expectation fails and leaves state unchanged
	current, err := store.UpdateSessionStatus("session1", model.StatusActive, model.StatusCancelled, "")
	require.ErrorIs(t, err, biddingerrors.ErrStatusConflict)
	require.Equal(t, model.StatusFinalized, current.Status)
	require.Equal(t, "bid9", current.WinningBidID)

	_, err = store.UpdateSessionStatus("missing", model.StatusActive, model.StatusFinalized, "")
	require.ErrorIs(t, err, biddingerrors.ErrSessionNotFound)
}

// Concurrent CAS: exactly one of many racing finalizers wins.
func TestMemoryStore_UpdateSessionStatus_Race(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(newSession("session1")))

	const racers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.UpdateSessionStatus("session1", model.StatusActive, model.StatusFinalized, fmt.Sprintf("bid%d", i))
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, winners)
}

func TestMemoryStore_ActiveSessionIDs(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.CreateSession(newSession("session1")))
	require.NoError(t, store.CreateSession(newSession("session2")))
	require.NoError(t, store.CreateSession(newSession("session3")))

	_, err := store.UpdateSessionStatus("session2", model.StatusActive, model.StatusCancelled, "")
	require.NoError(t, err)

	ids, err := store.ActiveSessionIDs()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"session1", "session3"}, ids)
}
