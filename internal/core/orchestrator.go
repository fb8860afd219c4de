package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/metrics"
	"pcsoft.com/lumo/internal/store"
)

// ApologyMessage replaces an answer that could not be produced.
const ApologyMessage = "Sorry, I encountered an error processing your request. Please try again."

var (
	ErrNotSignedIn    = errors.New("no signed-in user")
	ErrStreamCanceled = errors.New("response stream canceled")
)

// UserSource resolves the signed-in user, or nil.
type UserSource interface {
	CurrentUser() *store.User
}

// Streamer emits growing prefixes of the answer to a query.
type Streamer interface {
	Stream(ctx context.Context, query string, emit func(prefix string) error) error
}

// State is a snapshot of the chats held in memory.
type State struct {
	Chats      []store.Chat `json:"chats"`
	ActiveChat *store.Chat  `json:"activeChat"`
	IsLoading  bool         `json:"isLoading"`
}

type inflightStream struct {
	chatID string
	cancel context.CancelFunc
}

// Orchestrator applies chat actions to the in-memory state and to the chat
// store together. Streamed answer text is kept in memory only until the
// stream finishes, then persisted once.
type Orchestrator struct {
	mu       sync.Mutex
	chats    []store.Chat
	activeID string
	inflight map[string]inflightStream // keyed by assistant message ID

	store    *store.ChatStore
	users    UserSource
	streamer Streamer
	now      func() time.Time
}

func NewOrchestrator(chats *store.ChatStore, users UserSource, streamer Streamer) *Orchestrator {
	return &Orchestrator{
		chats:    []store.Chat{},
		inflight: make(map[string]inflightStream),
		store:    chats,
		users:    users,
		streamer: streamer,
		now:      time.Now,
	}
}

// Load replaces the in-memory chats with the stored ones and, when no chat is
// active, activates the most recently updated one.
func (o *Orchestrator) Load() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.chats = o.store.ListChats()
	if o.indexLocked(o.activeID) < 0 {
		o.activeID = ""
		if len(o.chats) > 0 {
			o.activeID = o.chats[0].ID
		}
	}
}

// Reset drops the in-memory state and cancels running streams.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelLocked("")
	o.chats = []store.Chat{}
	o.activeID = ""
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := State{
		Chats:     make([]store.Chat, len(o.chats)),
		IsLoading: len(o.inflight) > 0,
	}
	for i, chat := range o.chats {
		st.Chats[i] = chat.Clone()
		if chat.ID == o.activeID {
			active := chat.Clone()
			st.ActiveChat = &active
		}
	}
	return st
}

func (o *Orchestrator) CreateNewChat() (*store.Chat, error) {
	user := o.users.CurrentUser()
	if user == nil {
		return nil, ErrNotSignedIn
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	chat := o.createLocked(user.ID)
	return &chat, nil
}

// SelectChat activates the chat with the given ID, reloading from the store
// when it is not in memory. It reports whether the chat was found; otherwise
// the active chat is unchanged.
func (o *Orchestrator) SelectChat(chatID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.indexLocked(chatID) < 0 {
		o.chats = o.store.ListChats()
	}
	if o.indexLocked(chatID) < 0 {
		return false
	}
	o.activeID = chatID
	return true
}

// DeleteChat removes the chat everywhere and cancels its running streams.
func (o *Orchestrator) DeleteChat(chatID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancelLocked(chatID)
	o.store.DeleteChat(chatID)
	if i := o.indexLocked(chatID); i >= 0 {
		o.chats = append(o.chats[:i], o.chats[i+1:]...)
	}
	if o.activeID == chatID {
		o.activeID = ""
	}
}

func (o *Orchestrator) SearchChats(query string) []store.Chat {
	return o.store.Search(query)
}

// CancelStreams aborts every running stream.
func (o *Orchestrator) CancelStreams() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelLocked("")
}

// GetChat returns the persisted copy of a chat. Text still being streamed is
// not included.
func (o *Orchestrator) GetChat(chatID string) (store.Chat, bool) {
	return o.store.GetChat(chatID)
}

// SendMessage posts content to the active chat, creating one if needed, and
// streams the answer into a new assistant message. observe, when non-nil, is
// called with the assistant message after every in-memory update.
//
// A failed stream is replaced by an apology message, which is returned with a
// nil error. A canceled stream keeps the text produced so far and returns
// ErrStreamCanceled.
func (o *Orchestrator) SendMessage(ctx context.Context, content string, observe func(store.Message)) (*store.Message, error) {
	user := o.users.CurrentUser()
	if user == nil {
		return nil, ErrNotSignedIn
	}
	started := time.Now()

	o.mu.Lock()
	i := o.indexLocked(o.activeID)
	if i < 0 {
		o.createLocked(user.ID)
		i = 0
	}
	chatID := o.chats[i].ID
	isFirst := len(o.chats[i].Messages) == 0

	userMsg := store.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Type:      store.MessageTypeUser,
		Timestamp: o.now(),
		ChatID:    chatID,
	}
	o.appendLocked(chatID, userMsg)
	o.store.AppendMessage(chatID, userMsg)

	if isFirst {
		o.store.SetTitleFromFirstMessage(chatID, content)
		o.updateLocked(chatID, func(chat *store.Chat) bool {
			chat.Title = store.TitleFromMessage(content)
			return true
		})
	}

	assistant := store.Message{
		ID:            uuid.NewString(),
		Type:          store.MessageTypeAssistant,
		Timestamp:     o.now(),
		ChatID:        chatID,
		OriginalQuery: content,
	}
	streamCtx, cancel := context.WithCancel(ctx)
	o.inflight[assistant.ID] = inflightStream{chatID: chatID, cancel: cancel}
	o.appendLocked(chatID, assistant)
	o.store.AppendMessage(chatID, assistant)
	o.mu.Unlock()

	metrics.MessagesSent.Inc()
	defer func() {
		o.mu.Lock()
		delete(o.inflight, assistant.ID)
		o.mu.Unlock()
		cancel()
	}()

	logger := log.WithFields(log.Fields{"chat": chatID, "message": assistant.ID})
	err := o.streamer.Stream(streamCtx, content, func(prefix string) error {
		assistant.Content = prefix
		o.mu.Lock()
		ok := o.setContentLocked(chatID, assistant.ID, prefix)
		o.mu.Unlock()
		if ok && observe != nil {
			observe(assistant)
		}
		return nil
	})

	switch {
	case err == nil:
		o.mu.Lock()
		o.store.UpdateMessageContent(chatID, assistant.ID, assistant.Content)
		o.mu.Unlock()
		metrics.StreamDuration.Observe(time.Since(started).Seconds())
		logger.WithField("length", len(assistant.Content)).Debug("answer streamed")
		return &assistant, nil

	case streamCtx.Err() != nil:
		o.mu.Lock()
		o.store.UpdateMessageContent(chatID, assistant.ID, assistant.Content)
		o.mu.Unlock()
		logger.WithError(err).Info("answer stream canceled")
		return &assistant, ErrStreamCanceled

	default:
		metrics.StreamFailures.Inc()
		logger.WithError(err).Warn("answer stream failed")
		apology := store.Message{
			ID:        uuid.NewString(),
			Content:   ApologyMessage,
			Type:      store.MessageTypeAssistant,
			Timestamp: o.now(),
			ChatID:    chatID,
		}
		o.mu.Lock()
		o.appendLocked(chatID, apology)
		o.store.AppendMessage(chatID, apology)
		o.mu.Unlock()
		if observe != nil {
			observe(apology)
		}
		return &apology, nil
	}
}

func (o *Orchestrator) createLocked(userID string) store.Chat {
	chat := o.store.CreateChat(userID)
	o.chats = append([]store.Chat{chat}, o.chats...)
	o.activeID = chat.ID
	return chat.Clone()
}

func (o *Orchestrator) indexLocked(chatID string) int {
	if chatID == "" {
		return -1
	}
	for i := range o.chats {
		if o.chats[i].ID == chatID {
			return i
		}
	}
	return -1
}

// updateLocked applies fn to the chat and bumps UpdatedAt when fn reports a change.
func (o *Orchestrator) updateLocked(chatID string, fn func(chat *store.Chat) bool) bool {
	i := o.indexLocked(chatID)
	if i < 0 {
		return false
	}
	if !fn(&o.chats[i]) {
		return false
	}
	o.chats[i].UpdatedAt = o.now()
	return true
}

func (o *Orchestrator) appendLocked(chatID string, msg store.Message) {
	o.updateLocked(chatID, func(chat *store.Chat) bool {
		chat.Messages = append(chat.Messages, msg)
		return true
	})
}

func (o *Orchestrator) setContentLocked(chatID, messageID, content string) bool {
	return o.updateLocked(chatID, func(chat *store.Chat) bool {
		for i := range chat.Messages {
			if chat.Messages[i].ID == messageID {
				chat.Messages[i].Content = content
				return true
			}
		}
		return false
	})
}

// cancelLocked cancels the streams of chatID, or of every chat when chatID is empty.
func (o *Orchestrator) cancelLocked(chatID string) {
	for _, s := range o.inflight {
		if chatID == "" || s.chatID == chatID {
			s.cancel()
		}
	}
}
