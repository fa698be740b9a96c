package chat

import (
	"time"

	"github.com/google/uuid"
)

// Author identifies who wrote a message.
type Author int

const (
	AuthorUser Author = iota
	AuthorBot
)

func (a Author) String() string {
	if a == AuthorBot {
		return "bot"
	}
	return "user"
}

// Message is one transcript entry. Text is never empty.
type Message struct {
	ID     string
	Text   string
	Author Author
	At     time.Time
}

func newMessage(text string, author Author, at time.Time) Message {
	return Message{
		ID:     uuid.New().String(),
		Text:   text,
		Author: author,
		At:     at,
	}
}

// State is the widget state derived from the session.
type State int

const (
	StateClosed State = iota
	StateOpenEmpty
	StateOpenIdle
	StateOpenTyping
)

func (s State) String() string {
	switch s {
	case StateOpenEmpty:
		return "open-empty"
	case StateOpenIdle:
		return "open-idle"
	case StateOpenTyping:
		return "open-typing"
	default:
		return "closed"
	}
}

// Snapshot is a point-in-time copy of the session for rendering.
type Snapshot struct {
	Open       bool
	Typing     bool
	Transcript []Message
	// Queued counts replies waiting behind the one in flight.
	Queued int
}

// State derives the widget state from the snapshot.
func (s Snapshot) State() State {
	switch {
	case !s.Open:
		return StateClosed
	case s.Typing:
		return StateOpenTyping
	case len(s.Transcript) == 0:
		return StateOpenEmpty
	default:
		return StateOpenIdle
	}
}
