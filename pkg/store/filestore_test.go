package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/parley/pkg/conversation"
)

func testHistory() conversation.Conversation {
	return conversation.Conversation{
		conversation.NewChatMessage(conversation.RoleSystem, "You are a sassy assistant."),
		conversation.NewChatMessage(conversation.RoleUser, "hello"),
		conversation.NewChatMessage(conversation.RoleAssistant, "what do you want"),
	}
}

func TestRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	history := testHistory()

	require.NoError(t, s.Save("test-slot", history))

	loaded, err := s.Load("test-slot")
	require.NoError(t, err)

	require.Len(t, loaded, len(history))
	for i, message := range history {
		assert.Equal(t, message.Role, loaded[i].Role)
		assert.Equal(t, message.Content, loaded[i].Content)
	}
}

func TestSlotExtension(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save("plain", testHistory()))
	require.NoError(t, s.Save("explicit.json", testHistory()))

	_, err := os.Stat(filepath.Join(dir, "plain.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "explicit.json"))
	require.NoError(t, err)
}

func TestPersistedRepresentation(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save("slot", testHistory()))

	data, err := os.ReadFile(filepath.Join(dir, "slot.json"))
	require.NoError(t, err)

	text := string(data)
	// pretty-printed array of {role, content} objects, keys in that order
	assert.True(t, strings.HasPrefix(text, "[\n"))
	assert.Contains(t, text, "  {\n    \"role\": \"system\",\n    \"content\": \"You are a sassy assistant.\"\n  }")
	assert.Less(t, strings.Index(text, "\"role\""), strings.Index(text, "\"content\""))
}

func TestLoadMissingSlot(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Load("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadCorruptSlot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{ not json"), 0644))

	s := NewFileStore(dir)

	_, err := s.Load("bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "histories")
	s := NewFileStore(dir)

	require.NoError(t, s.Save("slot", testHistory()))

	_, err := os.Stat(filepath.Join(dir, "slot.json"))
	require.NoError(t, err)
}

func TestSaveIOFailure(t *testing.T) {
	dir := t.TempDir()
	// a file where the store expects a directory
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0644))

	s := NewFileStore(blocked)

	err := s.Save("slot", testHistory())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
}
