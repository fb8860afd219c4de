package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/metrics"
	"pcsoft.com/lumo/internal/session"
	"pcsoft.com/lumo/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultLoginDelay imitates the round trip of a remote login call.
const DefaultLoginDelay = time.Second

type demoAccount struct {
	password string
	user     store.User
}

var demoAccounts = map[string]demoAccount{
	"sateesh.jain@pcsoft.com": {
		password: "admin123",
		user: store.User{
			ID:     "1",
			Email:  "sateesh.jain@pcsoft.com",
			Name:   "Sateesh Jain",
			Role:   store.RoleAdmin,
			Avatar: "/images/avatars/admin.jpg",
		},
	},
	"harsha.jain@pcsoft.com": {
		password: "user123",
		user: store.User{
			ID:     "2",
			Email:  "harsha.jain@pcsoft.com",
			Name:   "Harsha Jain",
			Role:   store.RoleUser,
			Avatar: "/images/avatars/user.jpg",
		},
	},
}

type Service struct {
	kv         store.KeyValueStore
	tokens     *Tokens
	tracker    *session.Tracker
	loginDelay time.Duration
	now        func() time.Time
}

type ServiceConfig struct {
	// Secret signs issued tokens.
	Secret     string
	LoginDelay time.Duration
	Now        func() time.Time
}

func NewService(kv store.KeyValueStore, tracker *session.Tracker, cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		kv:         kv,
		tokens:     NewTokens(kv, tracker, cfg.Secret, now),
		tracker:    tracker,
		loginDelay: cfg.LoginDelay,
		now:        now,
	}
}

func (s *Service) Tokens() *Tokens {
	return s.tokens
}

func (s *Service) Tracker() *session.Tracker {
	return s.tracker
}

// Login checks the pair against the demo accounts and, on success, issues a
// token and persists the user.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, error) {
	if err := sleep(ctx, s.loginDelay); err != nil {
		return nil, err
	}

	account, ok := demoAccounts[email]
	if !ok || account.password != password {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		log.WithField("email", email).Info("login rejected")
		return nil, ErrInvalidCredentials
	}

	user := account.user
	user.CreatedAt = s.now()

	if _, err := s.tokens.Issue(user); err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to issue token for %s: %w", email, err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize user %s: %w", email, err)
	}
	s.kv.Set(store.KeyUser, string(data))

	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	log.WithFields(log.Fields{"user": user.ID, "role": user.Role}).Info("login accepted")
	return &user, nil
}

// Logout forgets the token, the user, the chat history and the login instant.
func (s *Service) Logout() {
	s.tokens.Revoke()
	s.kv.Remove(store.KeyUser)
	s.kv.Remove(store.KeyChats)
	s.tracker.ClearLogin()
	log.Info("logged out")
}

// CurrentUser returns the persisted user while the token is valid or the
// auto-login window is still open.
func (s *Service) CurrentUser() *store.User {
	raw, ok := s.kv.Get(store.KeyUser)
	if !ok || raw == "" {
		return nil
	}
	if !s.tokens.IsValid() && !s.tracker.CanAutoLogin() {
		return nil
	}

	var user store.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.WithError(err).Warn("stored user is unreadable")
		return nil
	}
	return &user
}

func (s *Service) IsAuthenticated() bool {
	return s.tokens.IsValid() && s.CurrentUser() != nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
