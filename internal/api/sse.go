package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/core"
	"pcsoft.com/lumo/internal/store"
)

// eventWriter writes server-sent events and flushes after each one.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newEventWriter(w http.ResponseWriter) (*eventWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	return &eventWriter{w: w, flusher: flusher}, true
}

func (e *eventWriter) send(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("event", event).Error("failed to encode event")
		return
	}
	fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", event, data)
	e.flusher.Flush()
}

type streamError struct {
	Error string `json:"error"`
}

func (h *APIHandler) streamMessage(w http.ResponseWriter, r *http.Request, content string) {
	events, ok := newEventWriter(w)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	msg, err := h.chats.SendMessage(r.Context(), content, func(m store.Message) {
		events.send("delta", m)
	})
	switch {
	case errors.Is(err, core.ErrStreamCanceled):
		events.send("done", PostMessageResponse{Message: msg, Canceled: true})
	case errors.Is(err, core.ErrNotSignedIn):
		events.send("error", streamError{Error: "Session expired"})
	case err != nil:
		log.WithError(err).Error("failed to stream message")
		events.send("error", streamError{Error: "Failed to post message"})
	default:
		events.send("done", PostMessageResponse{Message: msg})
	}
}
