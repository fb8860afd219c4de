package store

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultChatTitle = "New Chat"
	titleMaxRunes    = 30
	titleEllipsis    = "..."
)

// ChatStore keeps the full chat history as one JSON array under KeyChats.
// Every mutation reads, modifies and rewrites the whole collection.
type ChatStore struct {
	kv  KeyValueStore
	now func() time.Time
}

type ChatStoreOption func(*ChatStore)

// WithChatClock overrides the clock used for created/updated timestamps.
func WithChatClock(now func() time.Time) ChatStoreOption {
	return func(s *ChatStore) { s.now = now }
}

func NewChatStore(kv KeyValueStore, opts ...ChatStoreOption) *ChatStore {
	s := &ChatStore{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TitleFromMessage derives a chat title from the first user message.
func TitleFromMessage(text string) string {
	runes := []rune(text)
	if len(runes) <= titleMaxRunes {
		return text
	}
	return string(runes[:titleMaxRunes]) + titleEllipsis
}

// ListChats returns every stored chat, most recently updated first.
// A missing or unreadable blob yields an empty list.
func (s *ChatStore) ListChats() []Chat {
	raw, ok := s.kv.Get(KeyChats)
	if !ok || raw == "" {
		return []Chat{}
	}

	var chats []Chat
	if err := json.Unmarshal([]byte(raw), &chats); err != nil {
		log.WithError(err).Warn("stored chats are unreadable, starting from an empty history")
		return []Chat{}
	}
	for i := range chats {
		if chats[i].Messages == nil {
			chats[i].Messages = []Message{}
		}
	}

	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	return chats
}

func (s *ChatStore) GetChat(chatID string) (Chat, bool) {
	for _, chat := range s.ListChats() {
		if chat.ID == chatID {
			return chat, true
		}
	}
	return Chat{}, false
}

func (s *ChatStore) CreateChat(userID string) Chat {
	now := s.now()
	chat := Chat{
		ID:        uuid.NewString(),
		Title:     DefaultChatTitle,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}

	chats := append([]Chat{chat}, s.ListChats()...)
	s.save(chats)
	return chat.Clone()
}

// AppendMessage adds msg to the end of the chat's messages. Unknown chat IDs are ignored.
func (s *ChatStore) AppendMessage(chatID string, msg Message) {
	s.mutate(chatID, func(chat *Chat) bool {
		chat.Messages = append(chat.Messages, msg)
		return true
	})
}

func (s *ChatStore) SetTitleFromFirstMessage(chatID, text string) {
	s.mutate(chatID, func(chat *Chat) bool {
		chat.Title = TitleFromMessage(text)
		return true
	})
}

// UpdateMessageContent replaces the content of one message. Unknown chat or
// message IDs are ignored.
func (s *ChatStore) UpdateMessageContent(chatID, messageID, content string) {
	s.mutate(chatID, func(chat *Chat) bool {
		for i := range chat.Messages {
			if chat.Messages[i].ID == messageID {
				chat.Messages[i].Content = content
				return true
			}
		}
		return false
	})
}

func (s *ChatStore) DeleteChat(chatID string) {
	chats := s.ListChats()
	kept := chats[:0]
	for _, chat := range chats {
		if chat.ID != chatID {
			kept = append(kept, chat)
		}
	}
	s.save(kept)
}

// Search matches the query case-insensitively against chat titles and message
// contents. The empty query matches every chat.
func (s *ChatStore) Search(query string) []Chat {
	term := strings.ToLower(query)
	results := []Chat{}
	for _, chat := range s.ListChats() {
		if chatMatches(chat, term) {
			results = append(results, chat)
		}
	}
	return results
}

func (s *ChatStore) Clear() {
	s.kv.Remove(KeyChats)
}

func chatMatches(chat Chat, term string) bool {
	if strings.Contains(strings.ToLower(chat.Title), term) {
		return true
	}
	for _, msg := range chat.Messages {
		if strings.Contains(strings.ToLower(msg.Content), term) {
			return true
		}
	}
	return false
}

// mutate applies fn to the named chat and, when fn reports a change, bumps
// UpdatedAt and persists the collection.
func (s *ChatStore) mutate(chatID string, fn func(chat *Chat) bool) {
	chats := s.ListChats()
	for i := range chats {
		if chats[i].ID != chatID {
			continue
		}
		if !fn(&chats[i]) {
			return
		}
		chats[i].UpdatedAt = s.now()
		s.save(chats)
		return
	}
}

func (s *ChatStore) save(chats []Chat) {
	data, err := json.Marshal(chats)
	if err != nil {
		log.WithError(err).Warn("failed to serialize chats")
		return
	}
	s.kv.Set(KeyChats, string(data))
}
