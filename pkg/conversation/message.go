package conversation

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation. Messages are immutable once
// appended, except for the system message whose content may be replaced in
// place on persona switches.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewChatMessage(role Role, content string) *Message {
	return &Message{
		Role:    role,
		Content: content,
	}
}

func (m *Message) View() string {
	return fmt.Sprintf("[%s]: %s", m.Role, strings.TrimRight(m.Content, "\n"))
}

// Conversation is an ordered sequence of messages. Index 0 is the system
// message; everything else is appended at the tail.
type Conversation []*Message

// Clone returns a deep copy, so that callers can render or persist a
// snapshot without aliasing the live history.
func (c Conversation) Clone() Conversation {
	ret := make(Conversation, len(c))
	for i, m := range c {
		m_ := *m
		ret[i] = &m_
	}
	return ret
}

// TotalTokens sums the token counts of all message contents, system
// message included.
func (c Conversation) TotalTokens(count func(text string) int) int {
	total := 0
	for _, m := range c {
		total += count(m.Content)
	}
	return total
}
