package ai

import (
	"context"

	appcfg "github.com/loci-space/core/internal/config"
)

// Turn is one message of a conversation, oldest first.
type Turn struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Gateway abstracts the remote completion backend. Complete issues one
// single-shot request; StreamChat relays tokens through onToken as they
// arrive and returns the full accumulated text.
type Gateway interface {
	Complete(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error)
	StreamChat(ctx context.Context, provider *appcfg.AIProvider, systemPrompt string, turns []Turn, onToken func(string)) (string, error)
}

type providerGateway struct{}

// NewGateway returns the Gateway backed by the configured providers.
func NewGateway() Gateway { return providerGateway{} }

func (providerGateway) Complete(ctx context.Context, provider *appcfg.AIProvider, systemPrompt, prompt string) (string, error) {
	return callAIWithSystemPrompt(ctx, provider, systemPrompt, prompt)
}

func (providerGateway) StreamChat(ctx context.Context, provider *appcfg.AIProvider, systemPrompt string, turns []Turn, onToken func(string)) (string, error) {
	return callAIStream(ctx, provider, systemPrompt, turns, onToken)
}
