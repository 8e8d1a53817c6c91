package chat

import (
	"github.com/google/uuid"

	"github.com/go-go-golems/parley/pkg/conversation"
)

type Option func(*Manager)

func WithModel(model string) Option {
	return func(m *Manager) {
		m.model = model
	}
}

func WithTemperature(temperature float64) Option {
	return func(m *Manager) {
		m.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(m *Manager) {
		m.maxTokens = maxTokens
	}
}

func WithTokenBudget(budget int) Option {
	return func(m *Manager) {
		m.tokenBudget = budget
	}
}

// WithHistorySlot sets the slot id under which the conversation is
// persisted. The default is a timestamped unique name.
func WithHistorySlot(slotID string) Option {
	return func(m *Manager) {
		m.slotID = slotID
	}
}

// WithPersona selects the initial persona. The default is "sassy".
func WithPersona(name string) Option {
	return func(m *Manager) {
		m.personaName = name
	}
}

func WithConversationID(id uuid.UUID) Option {
	return func(m *Manager) {
		m.conversationID = id
	}
}

// WithMessages seeds the conversation with additional messages after the
// system message. A successfully loaded history replaces the seed.
func WithMessages(messages ...*conversation.Message) Option {
	return func(m *Manager) {
		m.seed = append(m.seed, messages...)
	}
}

// callSettings are the per-call overrides of ChatCompletion. A field keeps
// the manager's stored value unless an option explicitly overrides it.
type callSettings struct {
	model       string
	temperature float64
	maxTokens   int
}

type CallOption func(*callSettings)

// WithCallModel overrides the model for token accounting on this call.
// The outgoing request keeps the manager's stored model; see DESIGN.md.
func WithCallModel(model string) CallOption {
	return func(s *callSettings) {
		s.model = model
	}
}

func WithCallTemperature(temperature float64) CallOption {
	return func(s *callSettings) {
		s.temperature = temperature
	}
}

func WithCallMaxTokens(maxTokens int) CallOption {
	return func(s *callSettings) {
		s.maxTokens = maxTokens
	}
}
