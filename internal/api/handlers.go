package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/auth"
	"pcsoft.com/lumo/internal/core"
	"pcsoft.com/lumo/internal/session"
	"pcsoft.com/lumo/internal/store"
	"pcsoft.com/lumo/internal/utils"
)

type contextKey string

const userContextKey contextKey = "user"

type APIHandler struct {
	authService *auth.Service
	chats       *core.Orchestrator
	now         func() time.Time
}

func NewAPIHandler(as *auth.Service, chats *core.Orchestrator) *APIHandler {
	return &APIHandler{authService: as, chats: chats, now: time.Now}
}

// AuthMiddleware admits requests whose bearer token is the stored session
// token and for which a signed-in user still resolves.
func (h *APIHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			http.Error(w, "Authorization header must use the Bearer scheme", http.StatusUnauthorized)
			return
		}
		current, ok := h.authService.Tokens().Current()
		if !ok || tokenString != current {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user := h.authService.CurrentUser()
		if user == nil {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		h.authService.Tracker().RecordActivity()

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *store.User `json:"user"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.WithError(err).WithField("email", req.Email).Error("login failed")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	token, _ := h.authService.Tokens().Current()
	h.chats.Load()

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout()
	h.chats.Reset()
	w.WriteHeader(http.StatusNoContent)
}

type AutoLoginStatus struct {
	RemainingSeconds int    `json:"remainingSeconds"`
	ShowNotice       bool   `json:"showNotice"`
	Notice           string `json:"notice,omitempty"`
}

type MeResponse struct {
	User      *store.User     `json:"user"`
	AutoLogin AutoLoginStatus `json:"autoLogin"`
}

func (h *APIHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(userContextKey).(*store.User)
	tracker := h.authService.Tracker()

	show, notice := tracker.Notice()
	resp := MeResponse{
		User: user,
		AutoLogin: AutoLoginStatus{
			RemainingSeconds: int(tracker.RemainingAutoLoginWindow() / time.Second),
			ShowNotice:       show,
		},
	}
	if show {
		resp.AutoLogin.Notice = fmt.Sprintf("You can reopen Lumo without signing in for %s more.", notice)
	}
	writeJSON(w, http.StatusOK, resp)
}

type HealthResponse struct {
	Status                 string `json:"status"`
	AutoLoginWindowMinutes int    `json:"autoLoginWindowMinutes"`
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:                 "ok",
		AutoLoginWindowMinutes: int(session.AutoLoginWindow / time.Minute),
	})
}

func (h *APIHandler) SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.SuggestedQuestions())
}

func (h *APIHandler) EnhancedResponseHandler(w http.ResponseWriter, r *http.Request) {
	resp, ok := core.Lookup(r.URL.Query().Get("q"))
	if !ok {
		http.Error(w, "No curated response", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type ChatSummary struct {
	store.Chat
	UpdatedLabel string `json:"updatedLabel"`
}

func (h *APIHandler) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	var chats []store.Chat
	if q := r.URL.Query().Get("q"); q != "" {
		chats = h.chats.SearchChats(q)
	} else {
		chats = h.chats.State().Chats
	}

	now := h.now()
	summaries := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, ChatSummary{Chat: chat, UpdatedLabel: utils.RelativeTime(chat.UpdatedAt, now)})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *APIHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chats.CreateNewChat()
	if err != nil {
		if errors.Is(err, core.ErrNotSignedIn) {
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}
		log.WithError(err).Error("failed to create chat")
		http.Error(w, "Failed to create chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (h *APIHandler) ActiveChatHandler(w http.ResponseWriter, r *http.Request) {
	active := h.chats.State().ActiveChat
	if active == nil {
		http.Error(w, "No active chat", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

// GetChatHandler returns the stored copy of a chat.
func (h *APIHandler) GetChatHandler(w http.ResponseWriter, r *http.Request) {
	chat, ok := h.chats.GetChat(chi.URLParam(r, "chatID"))
	if !ok {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *APIHandler) SelectChatHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	if !h.chats.SelectChat(chatID) {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.chats.State().ActiveChat)
}

func (h *APIHandler) DeleteChatHandler(w http.ResponseWriter, r *http.Request) {
	h.chats.DeleteChat(chi.URLParam(r, "chatID"))
	w.WriteHeader(http.StatusNoContent)
}

type PostMessageRequest struct {
	Content string `json:"content"`
}

type PostMessageResponse struct {
	Message  *store.Message `json:"message"`
	Canceled bool           `json:"canceled,omitempty"`
}

// PostMessageHandler sends a message to the active chat. Clients that accept
// text/event-stream receive every growing prefix as a "delta" event followed
// by a "done" event; others get the final message as JSON.
func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		http.Error(w, "Message content cannot be empty", http.StatusBadRequest)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		h.streamMessage(w, r, req.Content)
		return
	}

	msg, err := h.chats.SendMessage(r.Context(), req.Content, nil)
	switch {
	case errors.Is(err, core.ErrStreamCanceled):
		writeJSON(w, http.StatusOK, PostMessageResponse{Message: msg, Canceled: true})
	case errors.Is(err, core.ErrNotSignedIn):
		http.Error(w, "Session expired", http.StatusUnauthorized)
	case err != nil:
		log.WithError(err).Error("failed to post message")
		http.Error(w, "Failed to post message", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, PostMessageResponse{Message: msg})
	}
}

func (h *APIHandler) CancelStreamsHandler(w http.ResponseWriter, r *http.Request) {
	h.chats.CancelStreams()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}
