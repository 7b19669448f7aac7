// Package rules holds the pure bid admissibility and winner resolution
// functions. Nothing here mutates state; callers are responsible for
// serializing access to the session they pass in.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"
)

// minorUnitPrecision rounds monetary values to cents so floating-point noise
// cannot flip a boundary comparison.
const minorUnitPrecision int32 = 2

// HighestBid returns the current high bid in history, preferring the earliest
// bid on equal amounts. The second return is false when history is empty.
func HighestBid(history []model.Bid) (model.Bid, bool) {
	if len(history) == 0 {
		return model.Bid{}, false
	}
	high := history[0]
	for _, b := range history[1:] {
		if b.Amount > high.Amount || (b.Amount == high.Amount && b.CreatedAt.Before(high.CreatedAt)) {
			high = b
		}
	}
	return high, true
}

// MinimumNextAmount returns the smallest admissible raise over the current
// history: high bid times (1 + minIncrementPct), rounded to the minor unit.
// With an empty history any positive amount is admissible and 0 is returned.
func MinimumNextAmount(history []model.Bid, minIncrementPct float64) float64 {
	high, ok := HighestBid(history)
	if !ok {
		return 0
	}
	minNext := decimal.NewFromFloat(high.Amount).
		Mul(decimal.NewFromFloat(1 + minIncrementPct)).
		Round(minorUnitPrecision)
	result, _ := minNext.Float64()
	return result
}

// RoundsUsed counts bids per participant across the history.
func RoundsUsed(history []model.Bid) map[string]int {
	counts := make(map[string]int, 2)
	for _, b := range history {
		counts[b.UserID]++
	}
	return counts
}

// meetsMinimum compares amounts with decimal arithmetic at minor-unit
// precision. Equality is admissible.
func meetsMinimum(amount, minimum float64) bool {
	a := decimal.NewFromFloat(amount).Round(minorUnitPrecision)
	m := decimal.NewFromFloat(minimum).Round(minorUnitPrecision)
	return a.GreaterThanOrEqual(m)
}

// ValidateBid decides whether a candidate bid is admissible given the current
// session state and bid history. Checks run in order: session active,
// participant membership, positive amount, minimum increment, round cap.
// The first bid in a session is exempt from the increment check.
func ValidateBid(session model.BiddingSession, history []model.Bid, userID string, amount float64, minIncrementPct float64) error {
	if session.Status != model.StatusActive {
		return fmt.Errorf("rules: session %s has status %s: %w", session.SessionID, session.Status, biddingerrors.ErrSessionNotActive)
	}
	if !session.IsParticipant(userID) {
		return fmt.Errorf("rules: user %s is not part of session %s: %w", userID, session.SessionID, biddingerrors.ErrNotParticipant)
	}
	if amount <= 0 {
		return fmt.Errorf("rules: %w - non-positive bid amount %.2f", biddingerrors.ErrInvalidBid, amount)
	}
	if minNext := MinimumNextAmount(history, minIncrementPct); minNext > 0 && !meetsMinimum(amount, minNext) {
		return fmt.Errorf("rules: %w - minimum admissible amount is %.2f", biddingerrors.ErrBidTooLow, minNext)
	}
	if RoundsUsed(history)[userID] >= session.MaxRounds {
		return fmt.Errorf("rules: %w - user %s already placed %d bids", biddingerrors.ErrRoundLimit, userID, session.MaxRounds)
	}
	return nil
}
