package helpers

import (
	"time"

	model "rentbid/internal/models"
)

// Request/Response DTOs
type CreateSessionRequest struct {
	ParticipantA string     `json:"participant_a" binding:"required"`
	ParticipantB string     `json:"participant_b" binding:"required"`
	MaxRounds    int        `json:"max_rounds"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type SubmitBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	SessionID string  `json:"session_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	Round     int     `json:"round"`
	Origin    string  `json:"origin"`
	CreatedAt string  `json:"created_at"`
}

type SubmitBidResponse struct {
	Accepted        bool         `json:"accepted"`
	Bid             *BidResponse `json:"bid,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
}

type SessionResponse struct {
	SessionID    string  `json:"session_id"`
	ParticipantA string  `json:"participant_a"`
	ParticipantB string  `json:"participant_b"`
	Status       string  `json:"status"`
	MaxRounds    int     `json:"max_rounds"`
	CreatedAt    string  `json:"created_at"`
	ExpiresAt    *string `json:"expires_at,omitempty"`
	WinningBidID string  `json:"winning_bid_id,omitempty"`
}

// NewBidResponse converts a bid model into its HTTP representation.
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		SessionID: bid.SessionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		Round:     bid.Round,
		Origin:    string(bid.Origin),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewSessionResponse converts a session model into its HTTP representation.
func NewSessionResponse(session model.BiddingSession) SessionResponse {
	resp := SessionResponse{
		SessionID:    session.SessionID,
		ParticipantA: session.ParticipantA,
		ParticipantB: session.ParticipantB,
		Status:       string(session.Status),
		MaxRounds:    session.MaxRounds,
		CreatedAt:    session.CreatedAt.UTC().Format(time.RFC3339),
		WinningBidID: session.WinningBidID,
	}
	if session.ExpiresAt != nil {
		expires := session.ExpiresAt.UTC().Format(time.RFC3339)
		resp.ExpiresAt = &expires
	}
	return resp
}
