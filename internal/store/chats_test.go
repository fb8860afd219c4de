package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestChatStore(t *testing.T) (*ChatStore, *MemoryStore) {
	t.Helper()
	kv := NewMemoryStore()
	return NewChatStore(kv, WithChatClock(steppingClock())), kv
}

func TestListChatsEmptyAndCorrupt(t *testing.T) {
	s, kv := newTestChatStore(t)
	assert.Empty(t, s.ListChats())

	kv.Set(KeyChats, "{not json")
	assert.Empty(t, s.ListChats())
}

func TestCreateChatDefaults(t *testing.T) {
	s, _ := newTestChatStore(t)

	chat := s.CreateChat("2")
	assert.NotEmpty(t, chat.ID)
	assert.Equal(t, DefaultChatTitle, chat.Title)
	assert.Equal(t, "2", chat.UserID)
	assert.Empty(t, chat.Messages)

	chats := s.ListChats()
	require.Len(t, chats, 1)
	assert.Equal(t, chat.ID, chats[0].ID)
}

func TestMutationsSortedByUpdatedAt(t *testing.T) {
	s, _ := newTestChatStore(t)

	first := s.CreateChat("2")
	second := s.CreateChat("2")
	third := s.CreateChat("2")

	s.AppendMessage(first.ID, Message{ID: "m1", Content: "hello", Type: MessageTypeUser, ChatID: first.ID})
	s.DeleteChat(second.ID)

	chats := s.ListChats()
	require.Len(t, chats, 2)
	assert.Equal(t, first.ID, chats[0].ID)
	assert.Equal(t, third.ID, chats[1].ID)
	require.Len(t, chats[0].Messages, 1)
	assert.Equal(t, "hello", chats[0].Messages[0].Content)
	assert.True(t, chats[0].UpdatedAt.After(chats[0].CreatedAt))
}

func TestRoundTripPreservesFields(t *testing.T) {
	s, _ := newTestChatStore(t)
	chat := s.CreateChat("1")

	ts := time.Date(2024, 6, 1, 12, 30, 15, 123456789, time.FixedZone("X", 3600))
	msg := Message{
		ID:            "a1",
		Content:       "answer",
		Type:          MessageTypeAssistant,
		Timestamp:     ts,
		ChatID:        chat.ID,
		IsLoading:     true,
		OriginalQuery: "question",
	}
	s.AppendMessage(chat.ID, msg)

	got, ok := s.GetChat(chat.ID)
	require.True(t, ok)
	require.Len(t, got.Messages, 1)
	m := got.Messages[0]
	assert.Equal(t, msg.ID, m.ID)
	assert.Equal(t, msg.Content, m.Content)
	assert.Equal(t, msg.Type, m.Type)
	assert.Equal(t, msg.ChatID, m.ChatID)
	assert.Equal(t, msg.IsLoading, m.IsLoading)
	assert.Equal(t, msg.OriginalQuery, m.OriginalQuery)
	assert.True(t, ts.Equal(m.Timestamp))
	assert.True(t, chat.CreatedAt.Equal(got.CreatedAt))
}

func TestUnknownChatIsNoOp(t *testing.T) {
	s, kv := newTestChatStore(t)
	s.CreateChat("1")
	before, _ := kv.Get(KeyChats)

	s.AppendMessage("missing", Message{ID: "m"})
	s.UpdateMessageContent("missing", "m", "x")
	s.SetTitleFromFirstMessage("missing", "x")

	after, _ := kv.Get(KeyChats)
	assert.Equal(t, before, after)
}

func TestUpdateMessageContent(t *testing.T) {
	s, _ := newTestChatStore(t)
	chat := s.CreateChat("1")
	s.AppendMessage(chat.ID, Message{ID: "a1", Type: MessageTypeAssistant, ChatID: chat.ID})

	s.UpdateMessageContent(chat.ID, "a1", "final text")
	s.UpdateMessageContent(chat.ID, "nope", "ignored")

	got, ok := s.GetChat(chat.ID)
	require.True(t, ok)
	assert.Equal(t, "final text", got.Messages[0].Content)
}

func TestTitleFromMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Hello there", "Hello there"},
		{"exactly thirty", strings.Repeat("a", 30), strings.Repeat("a", 30)},
		{"long", "How can ERP help streamline our business processes?", "How can ERP help streamline ou..."},
		{"multibyte", strings.Repeat("é", 31), strings.Repeat("é", 30) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleFromMessage(tt.in)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len([]rune(got)), 33)
		})
	}
}

func TestSetTitleFromFirstMessage(t *testing.T) {
	s, _ := newTestChatStore(t)
	chat := s.CreateChat("1")

	s.SetTitleFromFirstMessage(chat.ID, "What are the key modules in a modern ERP system?")

	got, _ := s.GetChat(chat.ID)
	assert.Equal(t, "What are the key modules in a ...", got.Title)
	assert.True(t, got.UpdatedAt.After(chat.UpdatedAt))
}

func TestSearch(t *testing.T) {
	s, _ := newTestChatStore(t)
	erp := s.CreateChat("1")
	s.SetTitleFromFirstMessage(erp.ID, "ERP modules")
	inv := s.CreateChat("1")
	s.AppendMessage(inv.ID, Message{ID: "m", Content: "Inventory turnover is UP", ChatID: inv.ID})

	assert.Len(t, s.Search("erp"), 1)
	assert.Equal(t, erp.ID, s.Search("ERP")[0].ID)
	assert.Equal(t, inv.ID, s.Search("turnover is up")[0].ID)
	assert.Empty(t, s.Search("payroll"))
	assert.Len(t, s.Search(""), 2)
}

func TestClearRemovesHistory(t *testing.T) {
	s, kv := newTestChatStore(t)
	s.CreateChat("1")
	s.Clear()

	_, ok := kv.Get(KeyChats)
	assert.False(t, ok)
	assert.Empty(t, s.ListChats())
}
