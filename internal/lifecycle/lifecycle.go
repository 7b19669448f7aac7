// Package lifecycle owns the session state machine: which statuses a session
// may move between and when an active session is due for finalization.
package lifecycle

import (
	"fmt"
	"time"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"
	"rentbid/internal/rules"
)

// ShouldFinalize reports whether an active session is due for resolution.
// Two independent triggers, either sufficient:
//   - the session's deadline has passed (checked first);
//   - both participants have independently reached the per-user round cap.
//
// A session in which only one participant has ever bid never finalizes on
// round count alone.
func ShouldFinalize(session model.BiddingSession, history []model.Bid, now time.Time) bool {
	if session.Status != model.StatusActive {
		return false
	}
	if session.Expired(now) {
		return true
	}

	counts := rules.RoundsUsed(history)
	if len(counts) < 2 {
		return false
	}
	return counts[session.ParticipantA] >= session.MaxRounds &&
		counts[session.ParticipantB] >= session.MaxRounds
}

// validNext enumerates the monotone transition set: active may move to any
// terminal status, terminal statuses move nowhere.
func validNext(from, to model.SessionStatus) bool {
	if from != model.StatusActive {
		return false
	}
	return to == model.StatusFinalized || to == model.StatusExpired || to == model.StatusCancelled
}

// Transition returns a copy of the session with the new status applied, or
// ErrInvalidTransition when the move violates monotonicity. The input session
// is never modified.
func Transition(session model.BiddingSession, next model.SessionStatus) (model.BiddingSession, error) {
	if !validNext(session.Status, next) {
		return session, fmt.Errorf("lifecycle: session %s cannot move from %s to %s: %w",
			session.SessionID, session.Status, next, biddingerrors.ErrInvalidTransition)
	}
	session.Status = next
	return session, nil
}
