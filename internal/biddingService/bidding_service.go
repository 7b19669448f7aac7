// Package bidding orchestrates the bidding engine: it is the sole entry
// point external callers use and sequences validation, persistence, lifecycle
// checks, auto-bid arbitration and winner resolution.
package bidding

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"rentbid/internal/autobid"
	"rentbid/internal/biddingerrors"
	"rentbid/internal/config"
	"rentbid/internal/events"
	"rentbid/internal/lifecycle"
	model "rentbid/internal/models"
	"rentbid/internal/repository"
	"rentbid/internal/rules"
	"rentbid/utils"
)

// SubmitResult is the structured answer to a bid submission. Validation
// failures are reported here with a stable reason code, never as an error.
type SubmitResult struct {
	Accepted        bool       `json:"accepted"`
	Bid             *model.Bid `json:"bid,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// SessionSnapshot is the read-only view exposed by GetSessionState.
type SessionSnapshot struct {
	Session         model.BiddingSession `json:"session"`
	Bids            []model.Bid          `json:"bids"`
	HighBid         *model.Bid           `json:"high_bid,omitempty"`
	MinimumNextBid  float64              `json:"minimum_next_bid"`
	RoundsRemaining map[string]int       `json:"rounds_remaining"`
}

// BiddingService coordinates all mutations of bidding sessions. A single
// session is the unit of serializability: every load-validate-write sequence
// for one session runs under that session's lock, while different sessions
// proceed fully in parallel.
type BiddingService struct {
	store     repository.SessionStore
	cfg       config.EngineConfig
	publisher events.Publisher

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	autoMu   sync.RWMutex
	autoBids map[string]model.AutoBidConfig // key: userID
}

// NewBiddingService creates a new BiddingService instance. A nil publisher
// falls back to logging finalization events.
func NewBiddingService(store repository.SessionStore, cfg config.EngineConfig, publisher events.Publisher) *BiddingService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &BiddingService{
		store:     store,
		cfg:       cfg,
		publisher: publisher,
		locks:     make(map[string]*sync.Mutex),
		autoBids:  make(map[string]model.AutoBidConfig),
	}
}

// sessionLock returns the mutex serializing all writes for one session.
func (s *BiddingService) sessionLock(sessionID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// SetAutoBid registers or replaces a user's standing auto-bid authorization.
// The engine reads these configs but never mutates them.
func (s *BiddingService) SetAutoBid(cfg model.AutoBidConfig) {
	s.autoMu.Lock()
	defer s.autoMu.Unlock()
	s.autoBids[cfg.UserID] = cfg
}

func (s *BiddingService) autoBidFor(userID string) *model.AutoBidConfig {
	s.autoMu.RLock()
	defer s.autoMu.RUnlock()

	cfg, ok := s.autoBids[userID]
	if !ok {
		return nil
	}
	return &cfg
}

// CreateSession opens a new active session between two distinct participants.
// A non-positive maxRounds falls back to the configured default; a nil
// expiresAt means the session has no time limit.
func (s *BiddingService) CreateSession(participantA, participantB string, maxRounds int, expiresAt *time.Time) (model.BiddingSession, error) {
	if participantA == "" || participantB == "" {
		return model.BiddingSession{}, fmt.Errorf("service: %w - missing participant ID", biddingerrors.ErrInvalidBid)
	}
	if participantA == participantB {
		return model.BiddingSession{}, fmt.Errorf("service: %w - participants must be distinct", biddingerrors.ErrInvalidBid)
	}
	if maxRounds <= 0 {
		maxRounds = s.cfg.DefaultMaxRounds
	}

	session := model.BiddingSession{
		SessionID:    utils.GenerateID(),
		ParticipantA: participantA,
		ParticipantB: participantB,
		Status:       model.StatusActive,
		MaxRounds:    maxRounds,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    expiresAt,
	}

	if err := s.store.CreateSession(session); err != nil {
		return model.BiddingSession{}, fmt.Errorf("service: create session: %w: %v", biddingerrors.ErrPersistence, err)
	}
	return session, nil
}

// SubmitBid validates and records a participant's bid, finalizes the session
// if the bid exhausts it, and otherwise gives the opponent's auto-bid agent
// one chance to counter. Validation failures come back as a rejected
// SubmitResult; only state and persistence failures are returned as errors.
func (s *BiddingService) SubmitBid(sessionID, userID string, amount float64) (SubmitResult, error) {
	result, session, history, err := s.submit(sessionID, userID, amount, model.OriginManual)
	if err != nil || !result.Accepted {
		return result, err
	}

	// The counter-bid re-enters the pipeline after the triggering submission
	// has released the session lock; it gets no privileged fast path.
	if session.Status == model.StatusActive {
		s.maybeAutoBid(session, history, *result.Bid)
	}
	return result, nil
}

// submit runs the full pipeline for one bid under the session lock:
// lazy finalization, validation, append, finalization re-check.
// It returns the post-submission session and history so the caller can
// consult the arbiter without re-reading the store.
func (s *BiddingService) submit(sessionID, userID string, amount float64, origin model.BidOrigin) (SubmitResult, model.BiddingSession, []model.Bid, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()

	// Catch stale-but-expired sessions before admitting new bids.
	session, err := s.finalizeLocked(sessionID, now)
	if err != nil {
		return SubmitResult{}, model.BiddingSession{}, nil, err
	}

	history, err := s.store.LoadBidHistory(sessionID)
	if err != nil {
		return SubmitResult{}, model.BiddingSession{}, nil, fmt.Errorf("service: load bid history for session %s: %w", sessionID, err)
	}

	if err := rules.ValidateBid(session, history, userID, amount, s.cfg.MinIncrementPct); err != nil {
		if isValidationError(err) {
			return SubmitResult{Accepted: false, RejectionReason: biddingerrors.ReasonFor(err)}, session, history, nil
		}
		return SubmitResult{}, model.BiddingSession{}, nil, err
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		SessionID: sessionID,
		UserID:    userID,
		Amount:    amount,
		Round:     rules.RoundsUsed(history)[userID] + 1,
		Origin:    origin,
		CreatedAt: now,
	}

	if err := s.store.AppendBid(bid); err != nil {
		return SubmitResult{}, model.BiddingSession{}, nil, fmt.Errorf("service: append bid for session %s: %w: %v", sessionID, biddingerrors.ErrPersistence, err)
	}
	history = append(history, bid)

	// The accepted bid may have exhausted both participants' rounds.
	if lifecycle.ShouldFinalize(session, history, now) {
		session, err = s.resolveAndFinalize(session, history)
		if err != nil {
			return SubmitResult{}, model.BiddingSession{}, nil, err
		}
	}

	return SubmitResult{Accepted: true, Bid: &bid}, session, history, nil
}

// maybeAutoBid consults the opponent's auto-bid config and, when it applies,
// submits the counter-bid through the same pipeline as a manual bid. A
// rejected or failed auto-bid is logged and swallowed; it must never fail the
// manual bid that triggered it.
func (s *BiddingService) maybeAutoBid(session model.BiddingSession, history []model.Bid, justPlaced model.Bid) {
	opponent := session.Opponent(justPlaced.UserID)
	cfg := s.autoBidFor(opponent)

	amount, ok := autobid.MaybeCounterBid(session, history, justPlaced, cfg, s.cfg.MinIncrementPct)
	if !ok {
		return
	}

	result, _, _, err := s.submit(session.SessionID, opponent, amount, model.OriginAuto)
	switch {
	case err != nil:
		utils.Error("auto-bid submission failed", map[string]any{
			"session_id": session.SessionID,
			"user_id":    opponent,
			"amount":     amount,
			"error":      err.Error(),
		})
	case !result.Accepted:
		utils.Warn("auto-bid rejected", map[string]any{
			"session_id": session.SessionID,
			"user_id":    opponent,
			"amount":     amount,
			"reason":     result.RejectionReason,
		})
	default:
		utils.Info("auto-bid placed", map[string]any{
			"session_id": session.SessionID,
			"user_id":    opponent,
			"bid_id":     result.Bid.BidID,
			"amount":     amount,
		})
	}
}

// WithdrawSession cancels an active session at a participant's request. No
// outcome is computed for cancelled sessions.
func (s *BiddingService) WithdrawSession(sessionID, requesterID string) (model.BiddingSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.LoadSession(sessionID)
	if err != nil {
		return model.BiddingSession{}, fmt.Errorf("service: withdraw session %s: %w", sessionID, err)
	}
	if !session.IsParticipant(requesterID) {
		return model.BiddingSession{}, fmt.Errorf("service: withdraw session %s by %s: %w", sessionID, requesterID, biddingerrors.ErrNotParticipant)
	}

	if _, err := lifecycle.Transition(session, model.StatusCancelled); err != nil {
		return session, err
	}

	updated, err := s.store.UpdateSessionStatus(sessionID, model.StatusActive, model.StatusCancelled, "")
	if err != nil {
		if errors.Is(err, biddingerrors.ErrStatusConflict) {
			return updated, fmt.Errorf("service: withdraw session %s: %w", sessionID, biddingerrors.ErrInvalidTransition)
		}
		return model.BiddingSession{}, fmt.Errorf("service: withdraw session %s: %w: %v", sessionID, biddingerrors.ErrPersistence, err)
	}

	utils.Info("session withdrawn", map[string]any{
		"session_id":   sessionID,
		"requester_id": requesterID,
	})
	return updated, nil
}

// FinalizeIfDue finalizes the session when its finalize conditions are met.
// It is idempotent and safe to call on an already-terminal session, where it
// returns the session unchanged.
func (s *BiddingService) FinalizeIfDue(sessionID string) (model.BiddingSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.finalizeLocked(sessionID, time.Now().UTC())
}

// finalizeLocked checks finalize conditions and performs the terminal
// transition. Callers must hold the session lock. A session whose deadline
// passed with an empty history is closed as expired since there is no bid to
// resolve a winner from.
func (s *BiddingService) finalizeLocked(sessionID string, now time.Time) (model.BiddingSession, error) {
	session, err := s.store.LoadSession(sessionID)
	if err != nil {
		return model.BiddingSession{}, fmt.Errorf("service: load session %s: %w", sessionID, err)
	}
	if session.Status.Terminal() {
		return session, nil
	}

	history, err := s.store.LoadBidHistory(sessionID)
	if err != nil {
		return model.BiddingSession{}, fmt.Errorf("service: load bid history for session %s: %w", sessionID, err)
	}

	if !lifecycle.ShouldFinalize(session, history, now) {
		return session, nil
	}

	if len(history) == 0 {
		if _, err := lifecycle.Transition(session, model.StatusExpired); err != nil {
			return session, err
		}
		updated, err := s.store.UpdateSessionStatus(sessionID, model.StatusActive, model.StatusExpired, "")
		if err != nil {
			if errors.Is(err, biddingerrors.ErrStatusConflict) {
				// Lost the race to another finalizer; its result stands.
				return updated, nil
			}
			return model.BiddingSession{}, fmt.Errorf("service: expire session %s: %w: %v", sessionID, biddingerrors.ErrPersistence, err)
		}
		utils.Info("session expired without bids", map[string]any{"session_id": sessionID})
		return updated, nil
	}

	return s.resolveAndFinalize(session, history)
}

// resolveAndFinalize computes the outcome and performs the atomic
// active -> finalized swap. The conditional status update is the commit
// point guaranteeing at-most-one finalization: a caller losing the race
// receives the already-finalized session instead of re-resolving.
func (s *BiddingService) resolveAndFinalize(session model.BiddingSession, history []model.Bid) (model.BiddingSession, error) {
	outcome, err := rules.Resolve(session, history, s.cfg.CompensationRate)
	if err != nil {
		return session, err
	}
	if _, err := lifecycle.Transition(session, model.StatusFinalized); err != nil {
		return session, err
	}

	updated, err := s.store.UpdateSessionStatus(session.SessionID, model.StatusActive, model.StatusFinalized, outcome.WinningBidID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrStatusConflict) {
			return updated, nil
		}
		return model.BiddingSession{}, fmt.Errorf("service: finalize session %s: %w: %v", session.SessionID, biddingerrors.ErrPersistence, err)
	}

	s.publisher.PublishFinalized(events.FinalizationEvent{
		SessionID: session.SessionID,
		Outcome:   outcome,
	})
	return updated, nil
}

// GetSessionState returns a read-only snapshot: status, bid history, current
// high bid, minimum admissible next bid and rounds remaining per participant.
func (s *BiddingService) GetSessionState(sessionID string) (SessionSnapshot, error) {
	session, err := s.store.LoadSession(sessionID)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("service: load session %s: %w", sessionID, err)
	}
	history, err := s.store.LoadBidHistory(sessionID)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("service: load bid history for session %s: %w", sessionID, err)
	}

	snapshot := SessionSnapshot{
		Session:        session,
		Bids:           history,
		MinimumNextBid: rules.MinimumNextAmount(history, s.cfg.MinIncrementPct),
		RoundsRemaining: map[string]int{
			session.ParticipantA: session.MaxRounds,
			session.ParticipantB: session.MaxRounds,
		},
	}
	if high, ok := rules.HighestBid(history); ok {
		snapshot.HighBid = &high
	}
	for userID, used := range rules.RoundsUsed(history) {
		if remaining, ok := snapshot.RoundsRemaining[userID]; ok {
			snapshot.RoundsRemaining[userID] = remaining - used
		}
	}
	return snapshot, nil
}

// SweepExpired opportunistically finalizes every active session that is due.
// Intended for a periodic caller; errors on individual sessions are logged
// and do not stop the sweep.
func (s *BiddingService) SweepExpired() error {
	ids, err := s.store.ActiveSessionIDs()
	if err != nil {
		return fmt.Errorf("service: list active sessions: %w: %v", biddingerrors.ErrPersistence, err)
	}
	for _, id := range ids {
		if _, err := s.FinalizeIfDue(id); err != nil {
			utils.Error("sweep: finalize failed", map[string]any{
				"session_id": id,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

// isValidationError reports whether err belongs to the bid-rejection
// taxonomy, which SubmitBid converts to a structured rejection instead of
// propagating.
func isValidationError(err error) bool {
	return errors.Is(err, biddingerrors.ErrSessionNotActive) ||
		errors.Is(err, biddingerrors.ErrNotParticipant) ||
		errors.Is(err, biddingerrors.ErrBidTooLow) ||
		errors.Is(err, biddingerrors.ErrRoundLimit) ||
		errors.Is(err, biddingerrors.ErrInvalidBid)
}
