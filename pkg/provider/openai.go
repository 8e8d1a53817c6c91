package provider

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider calls an OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client *go_openai.Client
}

var _ Provider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(settings *APISettings) *OpenAIProvider {
	resolved := settings.resolve()

	config := go_openai.DefaultConfig(resolved.APIKey)
	config.BaseURL = resolved.BaseURL
	config.HTTPClient = &http.Client{
		Timeout: resolved.Timeout,
	}

	return &OpenAIProvider{
		client: go_openai.NewClientWithConfig(config),
	}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	messages := make([]go_openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = go_openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	log.Debug().
		Str("model", req.Model).
		Int("messages", len(messages)).
		Float64("temperature", req.Temperature).
		Int("max_tokens", req.MaxTokens).
		Msg("sending chat completion request")

	resp, err := p.client.CreateChatCompletion(ctx, go_openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, &Error{Err: err}
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{Err: errors.New("no completion choices returned")}
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
	}, nil
}
