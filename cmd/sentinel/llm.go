package main

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	// Groq exposes an OpenAI-compatible API surface.
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultChatModel   = "llama-3.1-8b-instant"
)

// Completer produces one chat completion for a system instruction and an
// optional user turn. Implemented by GroqClient; tests use stubs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GroqClient calls a chat-completion endpoint through the OpenAI client
// with a custom base URL.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient creates a chat client for the given key. Empty baseURL and
// model fall back to the Groq defaults.
func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	config.BaseURL = baseURL
	if model == "" {
		model = defaultChatModel
	}
	return &GroqClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends the instruction (and user turn, when non-empty) and
// returns the raw completion text.
func (g *GroqClient) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
	}
	if user != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: user,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion returned no choices", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
