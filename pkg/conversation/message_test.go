package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone(t *testing.T) {
	original := Conversation{
		NewChatMessage(RoleSystem, "system prompt"),
		NewChatMessage(RoleUser, "question"),
	}

	cloned := original.Clone()
	require.Len(t, cloned, 2)

	cloned[0].Content = "mutated"
	assert.Equal(t, "system prompt", original[0].Content)
}

func TestTotalTokens(t *testing.T) {
	c := Conversation{
		NewChatMessage(RoleSystem, "aaaa"),
		NewChatMessage(RoleUser, "bbbb"),
		NewChatMessage(RoleAssistant, "cc"),
	}

	total := c.TotalTokens(func(text string) int {
		return len(text)
	})
	assert.Equal(t, 10, total)
}

func TestView(t *testing.T) {
	m := NewChatMessage(RoleAssistant, "an answer\n")
	assert.Equal(t, "[assistant]: an answer", m.View())
}
