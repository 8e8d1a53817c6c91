package store

import (
	"github.com/pkg/errors"

	"github.com/go-go-golems/parley/pkg/conversation"
)

var (
	// ErrNotFound is returned by Load when the slot does not exist.
	ErrNotFound = errors.New("history slot not found")
	// ErrCorrupt is returned by Load when the slot content cannot be parsed.
	ErrCorrupt = errors.New("history slot is corrupt")
	// ErrIO is returned by Save when the slot cannot be written.
	ErrIO = errors.New("could not write history slot")
)

// Store persists conversation histories under named slots. It is a
// stateless read/write surface; it takes no ownership of the histories
// it is handed.
type Store interface {
	// Load returns the history stored under slotID. It returns ErrNotFound
	// if the slot is absent and ErrCorrupt if its content is unparseable.
	Load(slotID string) (conversation.Conversation, error)

	// Save writes the full history under slotID, replacing any previous
	// content. Write failures are wrapped in ErrIO.
	Save(slotID string, history conversation.Conversation) error
}
