package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/parley/pkg/conversation"
)

// FileStore persists each slot as a pretty-printed JSON array of
// {role, content} objects in a single directory.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(slotID string) string {
	if filepath.Ext(slotID) == "" {
		slotID += ".json"
	}
	return filepath.Join(s.dir, slotID)
}

func (s *FileStore) Load(slotID string) (conversation.Conversation, error) {
	path := s.path(slotID)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrNotFound, slotID)
		}
		return nil, errors.Wrapf(err, "could not read history slot %s", slotID)
	}

	var history conversation.Conversation
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", slotID, err)
	}

	log.Debug().
		Str("slot", slotID).
		Int("messages", len(history)).
		Msg("loaded conversation history")

	return history, nil
}

func (s *FileStore) Save(slotID string, history conversation.Conversation) error {
	path := s.path(slotID)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(ErrIO, "%s: %v", slotID, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(ErrIO, "%s: %v", slotID, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(history); err != nil {
		return errors.Wrapf(ErrIO, "%s: %v", slotID, err)
	}

	log.Debug().
		Str("slot", slotID).
		Int("messages", len(history)).
		Msg("saved conversation history")

	return nil
}
