package autobid

import (
	"testing"
	"time"

	model "rentbid/internal/models"

	"github.com/stretchr/testify/require"
)

const testMinIncrement = 0.10

func newSession(maxRounds int) model.BiddingSession {
	return model.BiddingSession{
		SessionID:    "session1",
		ParticipantA: "user1",
		ParticipantB: "user2",
		Status:       model.StatusActive,
		MaxRounds:    maxRounds,
		CreatedAt:    time.Now().UTC(),
	}
}

func newBid(userID string, amount float64, origin model.BidOrigin, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:     userID + "-bid",
		SessionID: "session1",
		UserID:    userID,
		Amount:    amount,
		Origin:    origin,
		CreatedAt: createdAt,
	}
}

func enabledConfig(userID string, ceiling float64) *model.AutoBidConfig {
	return &model.AutoBidConfig{UserID: userID, Ceiling: ceiling, Enabled: true}
}

func TestMaybeCounterBid(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name           string
		session        model.BiddingSession
		history        []model.Bid
		justPlaced     model.Bid
		opponentCfg    *model.AutoBidConfig
		expectedAmount float64
		expectedOK     bool
	}{
		{
			name:           "counters_at_exact_minimum",
			session:        newSession(3),
			history:        []model.Bid{newBid("user1", 100, model.OriginManual, now)},
			justPlaced:     newBid("user1", 100, model.OriginManual, now),
			opponentCfg:    enabledConfig("user2", 120),
			expectedAmount: 110,
			expectedOK:     true,
		},
		{
			name:           "ceiling_exactly_minimum",
			session:        newSession(3),
			history:        []model.Bid{newBid("user1", 100, model.OriginManual, now)},
			justPlaced:     newBid("user1", 100, model.OriginManual, now),
			opponentCfg:    enabledConfig("user2", 110),
			expectedAmount: 110,
			expectedOK:     true,
		},
		{
			name:        "ceiling_below_minimum",
			session:     newSession(3),
			history:     []model.Bid{newBid("user1", 125, model.OriginManual, now)},
			justPlaced:  newBid("user1", 125, model.OriginManual, now),
			opponentCfg: enabledConfig("user2", 120),
			expectedOK:  false,
		},
		{
			name:        "never_answers_an_auto_bid",
			session:     newSession(3),
			history:     []model.Bid{newBid("user2", 110, model.OriginAuto, now)},
			justPlaced:  newBid("user2", 110, model.OriginAuto, now),
			opponentCfg: enabledConfig("user1", 10000),
			expectedOK:  false,
		},
		{
			name:        "disabled_config",
			session:     newSession(3),
			history:     []model.Bid{newBid("user1", 100, model.OriginManual, now)},
			justPlaced:  newBid("user1", 100, model.OriginManual, now),
			opponentCfg: &model.AutoBidConfig{UserID: "user2", Ceiling: 1000, Enabled: false},
			expectedOK:  false,
		},
		{
			name:        "no_config",
			session:     newSession(3),
			history:     []model.Bid{newBid("user1", 100, model.OriginManual, now)},
			justPlaced:  newBid("user1", 100, model.OriginManual, now),
			opponentCfg: nil,
			expectedOK:  false,
		},
		{
			name:        "config_for_wrong_user",
			session:     newSession(3),
			history:     []model.Bid{newBid("user1", 100, model.OriginManual, now)},
			justPlaced:  newBid("user1", 100, model.OriginManual, now),
			opponentCfg: enabledConfig("user3", 1000),
			expectedOK:  false,
		},
		{
			name:    "opponent_rounds_exhausted",
			session: newSession(1),
			history: []model.Bid{
				newBid("user2", 100, model.OriginManual, now),
				newBid("user1", 110, model.OriginManual, now.Add(time.Second)),
			},
			justPlaced:  newBid("user1", 110, model.OriginManual, now.Add(time.Second)),
			opponentCfg: enabledConfig("user2", 1000),
			expectedOK:  false,
		},
		{
			name:        "never_fires_on_empty_history",
			session:     newSession(3),
			history:     nil,
			justPlaced:  newBid("user1", 100, model.OriginManual, now),
			opponentCfg: enabledConfig("user2", 1000),
			expectedOK:  false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			amount, ok := MaybeCounterBid(tc.session, tc.history, tc.justPlaced, tc.opponentCfg, testMinIncrement)
			require.Equal(t, tc.expectedOK, ok)
			if tc.expectedOK {
				require.Equal(t, tc.expectedAmount, amount)
			} else {
				require.Zero(t, amount)
			}
		})
	}
}
