package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiktoken-go/tokenizer"
)

func TestCountTokensDeterministic(t *testing.T) {
	counter := NewTiktokenCounter()

	text := "The quick brown fox jumps over the lazy dog."
	first := counter.CountTokens("gpt-4", text)
	second := counter.CountTokens("gpt-4", text)

	assert.Positive(t, first)
	assert.Equal(t, first, second)
}

func TestCountTokensEmptyText(t *testing.T) {
	counter := NewTiktokenCounter()

	assert.Equal(t, 0, counter.CountTokens("gpt-4", ""))
}

func TestUnknownModelFallsBackToCl100kBase(t *testing.T) {
	counter := NewTiktokenCounter()

	text := "Token counting falls back to a default encoding."

	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	require.NoError(t, err)
	ids, _, err := codec.Encode(text)
	require.NoError(t, err)

	assert.Equal(t, len(ids), counter.CountTokens("some-future-model", text))
}

func TestCodecIsCachedPerModel(t *testing.T) {
	counter := NewTiktokenCounter()

	_ = counter.CountTokens("gpt-4", "hello")
	_ = counter.CountTokens("gpt-4", "world")
	_ = counter.CountTokens("some-future-model", "hello")

	assert.Len(t, counter.codecs, 2)
}
