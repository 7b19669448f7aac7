package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoBids          = errors.New("no bids placed in session")
	ErrStatusConflict  = errors.New("session status changed concurrently")
	ErrPersistence     = errors.New("persistence failure")
)

// Bid validation errors
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrSessionNotActive = errors.New("session is not active")
	ErrNotParticipant   = errors.New("user is not a session participant")
	ErrBidTooLow        = errors.New("bid amount below minimum increment")
	ErrRoundLimit       = errors.New("maximum rounds reached for user")
)

// Lifecycle errors
var (
	ErrInvalidTransition = errors.New("invalid session status transition")
)

// Stable reason codes suitable for direct display to end users.
const (
	ReasonSessionEnded   = "Session has ended"
	ReasonNotParticipant = "Not a session participant"
	ReasonMinimumNotMet  = "Minimum bid not met"
	ReasonRoundsReached  = "Maximum rounds reached"
	ReasonInvalidBid     = "Invalid bid"
)

// ReasonFor maps a validation error to its user-visible reason code.
// Unknown errors map to the generic invalid-bid reason.
func ReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrSessionNotActive):
		return ReasonSessionEnded
	case errors.Is(err, ErrNotParticipant):
		return ReasonNotParticipant
	case errors.Is(err, ErrBidTooLow):
		return ReasonMinimumNotMet
	case errors.Is(err, ErrRoundLimit):
		return ReasonRoundsReached
	default:
		return ReasonInvalidBid
	}
}
