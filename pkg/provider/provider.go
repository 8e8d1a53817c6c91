package provider

import (
	"context"
	"fmt"

	"github.com/go-go-golems/parley/pkg/conversation"
)

// Request carries everything a completion provider needs for one call.
type Request struct {
	Model       string
	Messages    conversation.Conversation
	Temperature float64
	MaxTokens   int
}

// Response is the assistant text returned by a provider.
type Response struct {
	Content string
}

// Provider generates a chat completion for a conversation. A single
// attempt is made per call; retry policy is the caller's concern.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Error wraps failures reported by the provider itself (API errors,
// transport failures), as opposed to unexpected local failures. Callers
// distinguish the two with errors.As.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
