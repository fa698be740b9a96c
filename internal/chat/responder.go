package chat

import (
	"context"

	"github.com/anmolrajas/portfolio/internal/clock"
)

// Greeting is the first bot message of every session.
const Greeting = "Hello! I'm your AI assistant. How can I help you today?"

// CannedResponses are the simulated assistant's replies.
var CannedResponses = []string{
	Greeting,
	"That's interesting! Tell me more about that.",
	"I'd be happy to help you with that!",
	"Great question! Let me think about that...",
	"I'm here to assist you with any questions you might have.",
	"Feel free to ask me anything about the portfolio or development!",
	"I'm always learning and improving. What would you like to know?",
	"That's a fascinating topic! I'd love to discuss it more.",
}

// Responder produces the bot reply to the last message in history.
// Respond is called off the event loop and may block.
type Responder interface {
	Respond(ctx context.Context, history []Message) (string, error)
}

// Canned picks a reply uniformly at random from a fixed list.
type Canned struct {
	Responses []string
	Picker    clock.Picker
}

// NewCanned returns a Canned responder over CannedResponses.
func NewCanned(p clock.Picker) *Canned {
	if p == nil {
		p = clock.DefaultPicker
	}
	return &Canned{Responses: CannedResponses, Picker: p}
}

func (c *Canned) Respond(ctx context.Context, history []Message) (string, error) {
	if len(c.Responses) == 0 {
		return Greeting, nil
	}
	return c.Responses[c.Picker.Pick(len(c.Responses))], nil
}
