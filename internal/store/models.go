package store

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Name      string    `json:"name" yaml:"name"`
	Role      Role      `json:"role" yaml:"role"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

type Message struct {
	ID            string      `json:"id" yaml:"id"`
	Content       string      `json:"content" yaml:"content"`
	Type          MessageType `json:"type" yaml:"type"`
	Timestamp     time.Time   `json:"timestamp" yaml:"timestamp"`
	ChatID        string      `json:"chatId" yaml:"chatId"`
	IsLoading     bool        `json:"isLoading,omitempty" yaml:"isLoading,omitempty"`
	OriginalQuery string      `json:"originalQuery,omitempty" yaml:"originalQuery,omitempty"` // assistant messages only
}

type Chat struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Messages  []Message `json:"messages" yaml:"messages"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	UserID    string    `json:"userId" yaml:"userId"`
}

// Clone returns a copy of the chat that shares no message storage with c.
func (c Chat) Clone() Chat {
	msgs := make([]Message, len(c.Messages))
	copy(msgs, c.Messages)
	c.Messages = msgs
	return c
}
