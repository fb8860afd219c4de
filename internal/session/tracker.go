// Package session tracks the login instant that drives the auto-login window.
//
// After a successful login the user may be recognised again without
// re-authenticating for AutoLoginWindow, even once the token itself is no
// longer accepted.
package session

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/store"
)

const (
	// AutoLoginWindow is how long after login the user is still recognised.
	AutoLoginWindow = 15 * time.Minute

	// noticeThreshold is the remaining window below which a notice is shown.
	noticeThreshold = 5 * time.Minute
)

// Tracker records login and activity instants in a key-value store.
type Tracker struct {
	kv  store.KeyValueStore
	now func() time.Time
}

type Option func(*Tracker)

// WithClock overrides the tracker's time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(kv store.KeyValueStore, opts ...Option) *Tracker {
	t := &Tracker{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordLogin stores the current instant as the login time.
func (t *Tracker) RecordLogin() {
	t.kv.Set(store.KeySessionTimestamp, strconv.FormatInt(t.now().UnixMilli(), 10))
}

func (t *Tracker) ClearLogin() {
	t.kv.Remove(store.KeySessionTimestamp)
}

// RecordActivity stores the last-activity instant. It has no effect on the
// auto-login window.
func (t *Tracker) RecordActivity() {
	t.kv.Set(store.KeyLastActivity, strconv.FormatInt(t.now().UnixMilli(), 10))
}

// CanAutoLogin reports whether a login was recorded less than AutoLoginWindow ago.
func (t *Tracker) CanAutoLogin() bool {
	elapsed, ok := t.sinceLogin()
	if !ok {
		return false
	}
	return elapsed < AutoLoginWindow
}

// RemainingAutoLoginWindow returns how much of the window is left, never negative.
func (t *Tracker) RemainingAutoLoginWindow() time.Duration {
	elapsed, ok := t.sinceLogin()
	if !ok {
		return 0
	}
	return max(0, AutoLoginWindow-elapsed)
}

// Notice reports whether the expiry notice should be shown and its text, e.g.
// "4 minutes". It is shown only while the window is open and at most five
// minutes remain.
func (t *Tracker) Notice() (bool, string) {
	remaining := t.RemainingAutoLoginWindow()
	if remaining <= 0 || remaining > noticeThreshold {
		return false, ""
	}
	return true, FormatMinutes(remaining)
}

// FormatMinutes renders whole minutes with a singular or plural unit.
func FormatMinutes(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func (t *Tracker) sinceLogin() (time.Duration, bool) {
	raw, ok := t.kv.Get(store.KeySessionTimestamp)
	if !ok || raw == "" {
		return 0, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.WithField("value", raw).Debug("ignoring malformed login timestamp")
		return 0, false
	}
	return t.now().Sub(time.UnixMilli(ms)), true
}
