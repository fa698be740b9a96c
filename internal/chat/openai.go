package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/anmolrajas/portfolio/internal/logger"
)

// DefaultSystemPrompt frames the remote assistant.
const DefaultSystemPrompt = "You are the assistant on a developer's portfolio. " +
	"Answer briefly and in a friendly tone. If you don't know something about the developer, say so."

// RemoteTimeout bounds a single completion request.
const RemoteTimeout = 20 * time.Second

// OpenAIOptions configures an OpenAI responder.
type OpenAIOptions struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	// Fallback answers when the remote call fails. Nil means the error is
	// returned to the engine, which then uses its own canned responder.
	Fallback Responder
}

// OpenAI answers through the chat completions API.
type OpenAI struct {
	client       *openai.Client
	model        string
	systemPrompt string
	fallback     Responder
}

// NewOpenAI builds a responder from opts.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	prompt := opts.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	return &OpenAI{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: prompt,
		fallback:     opts.Fallback,
	}
}

func (o *OpenAI) Respond(ctx context.Context, history []Message) (string, error) {
	reply, err := o.complete(ctx, history)
	if err == nil {
		return reply, nil
	}

	logger.WithComponent("chat").Warn("remote responder failed", "model", o.model, "error", err)
	if o.fallback == nil {
		return "", err
	}
	return o.fallback.Respond(ctx, history)
}

func (o *OpenAI) complete(ctx context.Context, history []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, RemoteTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.model,
	}
	req.Messages = make([]openai.ChatCompletionMessage, 0, len(history)+1)
	req.Messages = append(req.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: o.systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Author == AuthorBot {
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Text,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat completion returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("openai chat completion returned an empty message")
	}
	return reply, nil
}
