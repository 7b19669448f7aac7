package models

import "time"

// SessionStatus is the lifecycle state of a bidding session.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusFinalized SessionStatus = "finalized"
	StatusExpired   SessionStatus = "expired"
	StatusCancelled SessionStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == StatusFinalized || s == StatusExpired || s == StatusCancelled
}

// BidOrigin records whether a bid was placed by the user or synthesized
// on their behalf by the auto-bid arbiter.
type BidOrigin string

const (
	OriginManual BidOrigin = "manual"
	OriginAuto   BidOrigin = "auto"
)

// BiddingSession is one contested bidding process between exactly two
// participants over one reservation slot. Sessions are never deleted;
// they only move to a terminal status.
type BiddingSession struct {
	SessionID    string        `json:"session_id"`
	ParticipantA string        `json:"participant_a"`
	ParticipantB string        `json:"participant_b"`
	Status       SessionStatus `json:"status"`
	MaxRounds    int           `json:"max_rounds"`
	CreatedAt    time.Time     `json:"created_at"`
	ExpiresAt    *time.Time    `json:"expires_at,omitempty"`
	WinningBidID string        `json:"winning_bid_id,omitempty"`
}

// IsParticipant reports whether userID is one of the session's two parties.
func (s BiddingSession) IsParticipant(userID string) bool {
	return userID == s.ParticipantA || userID == s.ParticipantB
}

// Opponent returns the other participant, or "" if userID is not a participant.
func (s BiddingSession) Opponent(userID string) string {
	switch userID {
	case s.ParticipantA:
		return s.ParticipantB
	case s.ParticipantB:
		return s.ParticipantA
	default:
		return ""
	}
}

// Expired reports whether the session's deadline, if any, has passed.
func (s BiddingSession) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Bid represents one raise placed by a participant. Bids are append-only:
// once persisted they are never updated or deleted.
type Bid struct {
	BidID     string    `json:"bid_id"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	Round     int       `json:"round"`
	Origin    BidOrigin `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
}

// AutoBidConfig is a user's standing authorization for automatic
// counter-bidding, read-only to the engine.
type AutoBidConfig struct {
	UserID  string  `json:"user_id"`
	Ceiling float64 `json:"ceiling"`
	Enabled bool    `json:"enabled"`
}

// Outcome is the result of a finalized session, computed exactly once.
type Outcome struct {
	WinnerID      string  `json:"winner_id"`
	WinningBidID  string  `json:"winning_bid_id"`
	WinningAmount float64 `json:"winning_amount"`
	LoserID       string  `json:"loser_id"`
	Compensation  float64 `json:"compensation"`
}
