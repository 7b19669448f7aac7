// Package events carries finalization events from the bidding engine to
// whatever notification layer subscribes to them. The engine does not format
// or deliver human-readable messages itself.
package events

import (
	model "rentbid/internal/models"
	"rentbid/utils"
)

// FinalizationEvent is emitted exactly once per finalized session.
type FinalizationEvent struct {
	SessionID string        `json:"session_id"`
	Outcome   model.Outcome `json:"outcome"`
}

// Publisher is the interface a notification collaborator implements.
type Publisher interface {
	PublishFinalized(event FinalizationEvent)
}

// LogPublisher writes finalization events to the structured log.
type LogPublisher struct{}

func (LogPublisher) PublishFinalized(event FinalizationEvent) {
	utils.Info("session finalized", map[string]any{
		"session_id":     event.SessionID,
		"winner_id":      event.Outcome.WinnerID,
		"winning_amount": event.Outcome.WinningAmount,
		"loser_id":       event.Outcome.LoserID,
		"compensation":   event.Outcome.Compensation,
	})
}

// ChannelPublisher forwards events to a channel so an in-process subscriber
// can consume them. Delivery is non-blocking: a full channel drops the event
// rather than stalling finalization.
type ChannelPublisher struct {
	ch chan FinalizationEvent
}

// NewChannelPublisher creates a ChannelPublisher with the given buffer size.
func NewChannelPublisher(buffer int) *ChannelPublisher {
	return &ChannelPublisher{ch: make(chan FinalizationEvent, buffer)}
}

// Events returns the receive side of the publisher.
func (p *ChannelPublisher) Events() <-chan FinalizationEvent {
	return p.ch
}

func (p *ChannelPublisher) PublishFinalized(event FinalizationEvent) {
	select {
	case p.ch <- event:
	default:
		utils.Warn("finalization event dropped, subscriber too slow", map[string]any{
			"session_id": event.SessionID,
		})
	}
}

// Multi fans one event out to several publishers; one publisher cannot block
// or fail delivery to the others.
type Multi []Publisher

func (m Multi) PublishFinalized(event FinalizationEvent) {
	for _, p := range m {
		p.PublishFinalized(event)
	}
}
