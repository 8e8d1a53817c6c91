package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPersonas(t *testing.T) {
	registry := NewRegistry()

	for _, name := range []string{"sassy", "angry", "thoughtful"} {
		prompt, err := registry.Get(name)
		require.NoError(t, err)
		assert.NotEmpty(t, prompt)
	}

	assert.True(t, registry.Has(DefaultName))
}

func TestGetUnknownPersona(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("stoic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPersona))
}

func TestCustomPersonaUnsetUntilFirstUse(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(CustomName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPersona))
}

func TestSetCustom(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.SetCustom("You are a pirate."))

	prompt, err := registry.Get(CustomName)
	require.NoError(t, err)
	assert.Equal(t, "You are a pirate.", prompt)

	// overwriting is allowed
	require.NoError(t, registry.SetCustom("You are a ninja."))
	prompt, err = registry.Get(CustomName)
	require.NoError(t, err)
	assert.Equal(t, "You are a ninja.", prompt)
}

func TestSetCustomRejectsBlankText(t *testing.T) {
	registry := NewRegistry()

	for _, text := range []string{"", "   ", "\t\n"} {
		err := registry.SetCustom(text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyMessage))
	}

	assert.False(t, registry.Has(CustomName))
}

func TestNamesSorted(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.SetCustom("You are a pirate."))

	assert.Equal(t, []string{"angry", "custom", "sassy", "thoughtful"}, registry.Names())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.yaml")
	err := os.WriteFile(path, []byte("pirate: You are a pirate.\nsassy: Overridden.\n"), 0644)
	require.NoError(t, err)

	registry := NewRegistry()
	require.NoError(t, registry.LoadFile(path))

	prompt, err := registry.Get("pirate")
	require.NoError(t, err)
	assert.Equal(t, "You are a pirate.", prompt)

	prompt, err = registry.Get("sassy")
	require.NoError(t, err)
	assert.Equal(t, "Overridden.", prompt)
}

func TestLoadFileErrors(t *testing.T) {
	registry := NewRegistry()

	require.Error(t, registry.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("]not yaml["), 0644))
	require.Error(t, registry.LoadFile(path))
}
