// Package session models one inbound command interaction and its response
// lifecycle: the platform expects an initial reply within a short deadline,
// after which the reply may be edited but never re-sent.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// State is the position of a session in its lifecycle. Transitions only move
// forward; every session ends in Responded, Edited or Failed.
type State int

const (
	StateReceived State = iota
	StateResponded
	StateEdited
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateResponded:
		return "responded"
	case StateEdited:
		return "edited"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrAlreadyResponded is returned when a second initial reply is
	// attempted. The guard fires before any network call is made.
	ErrAlreadyResponded = errors.New("session: initial reply already sent")

	// ErrNoInitialReply is returned when Edit is called before Respond.
	ErrNoInitialReply = errors.New("session: no initial reply to edit")

	// ErrAlreadyFailed is returned when Fail is called on a failed session.
	ErrAlreadyFailed = errors.New("session: already failed")
)

// Transport delivers replies to the platform. The Discord adapter implements
// it with interaction responses; tests use fakes.
type Transport interface {
	Respond(content string, ephemeral bool) error
	Edit(content string) error
	Followup(content string, ephemeral bool) error
}

// Session tracks one interaction. It is owned by a single handler invocation
// but the dispatcher's error path may touch it after the handler returns,
// so state changes are locked.
type Session struct {
	mu    sync.Mutex
	id    string
	state State
	tr    Transport
}

// New returns a session in the Received state.
func New(id string, tr Transport) *Session {
	return &Session{id: id, tr: tr}
}

// ID returns the interaction's identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Terminal reports whether the session has left the Received state.
func (s *Session) Terminal() bool {
	return s.State() != StateReceived
}

// Respond sends the public initial reply.
func (s *Session) Respond(content string) error {
	return s.respond(content, false)
}

// RespondEphemeral sends the initial reply visible only to the invoker.
func (s *Session) RespondEphemeral(content string) error {
	return s.respond(content, true)
}

func (s *Session) respond(content string, ephemeral bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReceived {
		return ErrAlreadyResponded
	}
	if err := s.tr.Respond(content, ephemeral); err != nil {
		s.state = StateFailed
		return fmt.Errorf("send initial reply: %w", err)
	}
	s.state = StateResponded
	return nil
}

// Edit replaces the content of an already-sent initial reply.
func (s *Session) Edit(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResponded && s.state != StateEdited {
		return ErrNoInitialReply
	}
	if err := s.tr.Edit(content); err != nil {
		return fmt.Errorf("edit reply: %w", err)
	}
	s.state = StateEdited
	return nil
}

// Fail delivers an error-path message, guaranteeing a visible response for
// the interaction. Before the initial reply it sends an ephemeral reply and
// marks the session Failed; after it, the message goes out as an ephemeral
// followup and the terminal state is kept.
func (s *Session) Fail(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateReceived:
		s.state = StateFailed
		if err := s.tr.Respond(content, true); err != nil {
			return fmt.Errorf("send failure reply: %w", err)
		}
		return nil
	case StateResponded, StateEdited:
		if err := s.tr.Followup(content, true); err != nil {
			return fmt.Errorf("send failure followup: %w", err)
		}
		return nil
	default:
		return ErrAlreadyFailed
	}
}
