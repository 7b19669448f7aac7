// Package autobid decides whether a ceiling-bounded automatic counter-bid
// should answer an opponent's accepted bid.
package autobid

import (
	model "rentbid/internal/models"
	"rentbid/internal/rules"
)

// MaybeCounterBid returns the amount the opponent's auto-bid agent should
// counter with, or ok=false when no auto-bid applies. The counter is always
// exactly the minimum legal raise; bidding higher would only inflate the
// final price.
//
// An auto-bid never answers another auto-bid: the triggering bid's origin is
// the structural guard against mutual escalation, so at most one automatic
// response follows each manual bid. The returned amount still goes through
// the regular validator on submission; the round-cap check here is only to
// avoid synthesizing a bid that is already known to be inadmissible.
func MaybeCounterBid(session model.BiddingSession, history []model.Bid, justPlaced model.Bid, opponentCfg *model.AutoBidConfig, minIncrementPct float64) (float64, bool) {
	if justPlaced.Origin == model.OriginAuto {
		return 0, false
	}
	if opponentCfg == nil || !opponentCfg.Enabled {
		return 0, false
	}

	opponent := session.Opponent(justPlaced.UserID)
	if opponent == "" || opponentCfg.UserID != opponent {
		return 0, false
	}
	if rules.RoundsUsed(history)[opponent] >= session.MaxRounds {
		return 0, false
	}

	minNext := rules.MinimumNextAmount(history, minIncrementPct)
	if minNext == 0 || minNext > opponentCfg.Ceiling {
		return 0, false
	}
	return minNext, true
}
