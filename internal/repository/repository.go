package repository

import (
	"fmt"
	"sync"

	"rentbid/internal/biddingerrors"
	model "rentbid/internal/models"
)

// SessionStore defines the persistence interface the bidding engine consumes.
// UpdateSessionStatus must be conditional: the status is only changed when
// the stored status equals expected, so two racing finalizations cannot both
// succeed.
type SessionStore interface {
	CreateSession(session model.BiddingSession) error
	LoadSession(sessionID string) (model.BiddingSession, error)
	LoadBidHistory(sessionID string) ([]model.Bid, error)
	AppendBid(bid model.Bid) error
	UpdateSessionStatus(sessionID string, expected, next model.SessionStatus, winningBidID string) (model.BiddingSession, error)
	ActiveSessionIDs() ([]string, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of SessionStore
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.BiddingSession // key: sessionID
	bids     map[string][]model.Bid          // key: sessionID -> append-only history
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.BiddingSession),
		bids:     make(map[string][]model.Bid),
	}
}

// CreateSession registers a new session. The session ID must be unused.
func (s *MemoryStore) CreateSession(session model.BiddingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.SessionID]; ok {
		return fmt.Errorf("create session %s: session ID already exists", session.SessionID)
	}
	s.sessions[session.SessionID] = session
	return nil
}

// LoadSession returns a snapshot of the session.
func (s *MemoryStore) LoadSession(sessionID string) (model.BiddingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return model.BiddingSession{}, fmt.Errorf("load session %s: %w", sessionID, biddingerrors.ErrSessionNotFound)
	}
	return session, nil
}

// LoadBidHistory returns all bids for a session in placement order. A session
// with no bids yet returns an empty history, not an error.
func (s *MemoryStore) LoadBidHistory(sessionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("load bid history %s: %w", sessionID, biddingerrors.ErrSessionNotFound)
	}
	return append([]model.Bid(nil), s.bids[sessionID]...), nil
}

// AppendBid records a bid against its session's history.
func (s *MemoryStore) AppendBid(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[bid.SessionID]; !ok {
		return fmt.Errorf("append bid for session %s: %w", bid.SessionID, biddingerrors.ErrSessionNotFound)
	}
	s.bids[bid.SessionID] = append(s.bids[bid.SessionID], bid)
	return nil
}

// UpdateSessionStatus performs a compare-and-swap on the session status. If
// the stored status does not equal expected, the stored session is returned
// unchanged together with ErrStatusConflict so the caller can observe who won
// the race. winningBidID is recorded only on a successful swap.
func (s *MemoryStore) UpdateSessionStatus(sessionID string, expected, next model.SessionStatus, winningBidID string) (model.BiddingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return model.BiddingSession{}, fmt.Errorf("update session %s: %w", sessionID, biddingerrors.ErrSessionNotFound)
	}

	if session.Status != expected {
		return session, fmt.Errorf("update session %s from %s to %s: %w", sessionID, expected, next, biddingerrors.ErrStatusConflict)
	}

	session.Status = next
	if winningBidID != "" {
		session.WinningBidID = winningBidID
	}
	s.sessions[sessionID] = session
	return session, nil
}

// ActiveSessionIDs returns the IDs of all sessions still in the active state.
// Used by the expiration sweeper.
func (s *MemoryStore) ActiveSessionIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for id, session := range s.sessions {
		if session.Status == model.StatusActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
