package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/parley/pkg/conversation"
	"github.com/go-go-golems/parley/pkg/persona"
	"github.com/go-go-golems/parley/pkg/provider"
	"github.com/go-go-golems/parley/pkg/store"
	"github.com/go-go-golems/parley/pkg/tokens"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
	DefaultTokenBudget = 4000
)

// Fallback responses returned by ChatCompletion instead of surfacing
// completion failures to the caller.
const (
	FallbackProviderError   = "I am sorry, but I can't process that request right now."
	FallbackUnexpectedError = "An error occurred. Please try again."
)

// Manager owns a single conversation: an ordered message history whose
// index 0 is always the persona system message, bounded by a token budget
// enforced through FIFO eviction of the oldest non-system messages.
//
// A Manager serves one caller context; it is not safe for concurrent use.
// Host applications serving multiple sessions create one Manager per
// session, each with its own history slot.
type Manager struct {
	registry *persona.Registry
	counter  tokens.Counter
	store    store.Store
	provider provider.Provider

	conversationID uuid.UUID
	slotID         string
	model          string
	temperature    float64
	maxTokens      int
	tokenBudget    int
	personaName    string

	seed    conversation.Conversation
	history conversation.Conversation
}

// NewManager resolves configuration against defaults, seeds the history
// with the persona system message and attempts to load a previously
// persisted history from the slot. Load failures of any kind (missing
// slot, corrupt content, I/O errors) are recoverable: the manager starts
// from the seeded history and logs a warning.
func NewManager(
	registry *persona.Registry,
	counter tokens.Counter,
	store_ store.Store,
	provider_ provider.Provider,
	options ...Option,
) (*Manager, error) {
	m := &Manager{
		registry:       registry,
		counter:        counter,
		store:          store_,
		provider:       provider_,
		conversationID: uuid.Nil,
		model:          DefaultModel,
		temperature:    DefaultTemperature,
		maxTokens:      DefaultMaxTokens,
		tokenBudget:    DefaultTokenBudget,
		personaName:    persona.DefaultName,
	}

	for _, option := range options {
		option(m)
	}

	if m.conversationID == uuid.Nil {
		m.conversationID = uuid.New()
	}
	if m.slotID == "" {
		m.slotID = fmt.Sprintf(
			"conversation-%s-%s",
			time.Now().Format("20060102-150405"),
			m.conversationID.String()[:8],
		)
	}

	if m.temperature < 0 || m.temperature > 2 {
		return nil, errors.Errorf("temperature %.2f out of range [0, 2]", m.temperature)
	}
	if m.maxTokens <= 0 {
		return nil, errors.Errorf("max tokens must be positive, got %d", m.maxTokens)
	}
	if m.tokenBudget <= 0 {
		return nil, errors.Errorf("token budget must be positive, got %d", m.tokenBudget)
	}

	systemPrompt, err := m.registry.Get(m.personaName)
	if err != nil {
		return nil, err
	}

	m.history = append(
		conversation.Conversation{conversation.NewChatMessage(conversation.RoleSystem, systemPrompt)},
		m.seed...,
	)
	m.seed = nil

	loaded, err := m.store.Load(m.slotID)
	switch {
	case err == nil:
		// adopt the persisted history verbatim, including its system message
		m.history = loaded
	case errors.Is(err, store.ErrNotFound):
		log.Debug().Str("slot", m.slotID).Msg("no persisted history, starting fresh")
	default:
		log.Warn().Err(err).Str("slot", m.slotID).Msg("could not load history, starting fresh")
	}

	return m, nil
}

// GetConversation returns a snapshot of the current history.
func (m *Manager) GetConversation() conversation.Conversation {
	return m.history.Clone()
}

func (m *Manager) ConversationID() uuid.UUID {
	return m.conversationID
}

func (m *Manager) Slot() string {
	return m.slotID
}

func (m *Manager) Model() string {
	return m.model
}

func (m *Manager) PersonaName() string {
	return m.personaName
}

// SetPersona switches the system message to the named persona. It fails
// with persona.ErrUnknownPersona for unregistered names and touches no
// message besides index 0.
func (m *Manager) SetPersona(name string) error {
	systemPrompt, err := m.registry.Get(name)
	if err != nil {
		return err
	}

	m.personaName = name

	if len(m.history) > 0 && m.history[0].Role == conversation.RoleSystem {
		m.history[0].Content = systemPrompt
	} else {
		m.history = append(
			conversation.Conversation{conversation.NewChatMessage(conversation.RoleSystem, systemPrompt)},
			m.history...,
		)
	}

	log.Debug().Str("persona", name).Msg("switched persona")

	return nil
}

// SetCustomSystemMessage registers text under the "custom" persona and
// switches to it. Blank text fails with persona.ErrEmptyMessage.
func (m *Manager) SetCustomSystemMessage(text string) error {
	if err := m.registry.SetCustom(text); err != nil {
		return err
	}
	return m.SetPersona(persona.CustomName)
}

// ChatCompletion appends prompt as a user message, evicts history down to
// the token budget, requests a completion and appends and persists the
// assistant response.
//
// Completion failures are absorbed: the returned text is then a fixed
// fallback string, the user message stays in history, and nothing is
// persisted for the failed turn.
func (m *Manager) ChatCompletion(ctx context.Context, prompt string, options ...CallOption) string {
	settings := callSettings{
		model:       m.model,
		temperature: m.temperature,
		maxTokens:   m.maxTokens,
	}
	for _, option := range options {
		option(&settings)
	}

	m.history = append(m.history, conversation.NewChatMessage(conversation.RoleUser, prompt))

	m.enforceTokenBudget(settings.model)

	// The request always carries the stored model; a per-call model
	// override only affects token accounting (see DESIGN.md).
	resp, err := m.provider.Complete(ctx, provider.Request{
		Model:       m.model,
		Messages:    m.history,
		Temperature: settings.temperature,
		MaxTokens:   settings.maxTokens,
	})
	if err != nil {
		var providerErr *provider.Error
		if errors.As(err, &providerErr) {
			log.Error().Err(err).Str("model", m.model).Msg("completion request failed")
			return FallbackProviderError
		}
		log.Error().Err(err).Str("model", m.model).Msg("unexpected completion failure")
		return FallbackUnexpectedError
	}

	m.history = append(m.history, conversation.NewChatMessage(conversation.RoleAssistant, resp.Content))

	m.save()

	return resp.Content
}

// enforceTokenBudget evicts the oldest non-system messages until the
// history fits the token budget. The system message at index 0 is never
// evicted, so a single oversized message still shrinks the history down
// to length 1.
func (m *Manager) enforceTokenBudget(model string) {
	count := func(text string) int {
		return m.counter.CountTokens(model, text)
	}

	for m.history.TotalTokens(count) > m.tokenBudget && len(m.history) > 1 {
		evicted := m.history[1]
		m.history = append(m.history[:1], m.history[2:]...)

		log.Debug().
			Str("role", string(evicted.Role)).
			Int("remaining", len(m.history)).
			Msg("evicted message to fit token budget")
	}
}

// ResetConversationHistory discards everything but a fresh system message
// for the current persona and persists the result immediately.
func (m *Manager) ResetConversationHistory() {
	systemPrompt, err := m.registry.Get(m.personaName)
	if err != nil {
		// the current persona is always registered
		systemPrompt = ""
	}

	m.history = conversation.Conversation{
		conversation.NewChatMessage(conversation.RoleSystem, systemPrompt),
	}

	m.save()
}

func (m *Manager) save() {
	if err := m.store.Save(m.slotID, m.history); err != nil {
		log.Warn().Err(err).Str("slot", m.slotID).Msg("could not persist history, continuing in memory")
	}
}
