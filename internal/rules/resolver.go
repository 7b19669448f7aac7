package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"
)

// Resolve determines the session outcome from a finished bid history: the
// bidder of the highest-amount bid wins (ties broken by earliest CreatedAt)
// and the loser is owed compensationRate of the winning amount, rounded to
// the currency's minor unit. Finalization must never be attempted on an
// empty history; that is reported as ErrNoBids.
func Resolve(session model.BiddingSession, history []model.Bid, compensationRate float64) (model.Outcome, error) {
	winning, ok := HighestBid(history)
	if !ok {
		return model.Outcome{}, fmt.Errorf("rules: resolve session %s: %w", session.SessionID, biddingerrors.ErrNoBids)
	}

	compensation, _ := decimal.NewFromFloat(winning.Amount).
		Mul(decimal.NewFromFloat(compensationRate)).
		Round(minorUnitPrecision).
		Float64()

	return model.Outcome{
		WinnerID:      winning.UserID,
		WinningBidID:  winning.BidID,
		WinningAmount: winning.Amount,
		LoserID:       session.Opponent(winning.UserID),
		Compensation:  compensation,
	}, nil
}
