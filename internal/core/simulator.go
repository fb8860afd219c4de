package core

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const (
	maxThinkingDelay = 2000 * time.Millisecond
	processingDelay  = 500 * time.Millisecond

	sentencePause = 300 * time.Millisecond
	clausePause   = 150 * time.Millisecond
	emphasisPause = 80 * time.Millisecond
	longWordPause = 60 * time.Millisecond
	basePause     = 40 * time.Millisecond

	pauseJitter = 20 * time.Millisecond
	minPause    = 20 * time.Millisecond

	longWordRunes = 8
)

// Simulator reveals an answer word by word, the way a streaming model would.
type Simulator struct {
	fallback FallbackWriter
	pace     float64
	random   func() float64
}

type SimulatorOption func(*Simulator)

// WithPace scales every wait. 1 is real time and 0 disables waiting entirely.
func WithPace(pace float64) SimulatorOption {
	return func(s *Simulator) { s.pace = max(0, pace) }
}

// WithRandom replaces the uniform [0,1) source used for delays.
func WithRandom(random func() float64) SimulatorOption {
	return func(s *Simulator) { s.random = random }
}

// WithFallback sets the writer used for queries with no curated answer.
func WithFallback(fallback FallbackWriter) SimulatorOption {
	return func(s *Simulator) { s.fallback = fallback }
}

func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		fallback: TemplateFallback{},
		pace:     1,
		random:   rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the full answer for query without streaming it.
func (s *Simulator) Resolve(ctx context.Context, query string) (Resolution, error) {
	return Resolve(ctx, s.fallback, query)
}

// Stream calls emit with ever-longer prefixes of the answer to query, the last
// call receiving the whole answer. It stops early when ctx is done or emit
// returns an error, and returns that error.
func (s *Simulator) Stream(ctx context.Context, query string, emit func(prefix string) error) error {
	thinking := time.Duration(s.random() * float64(maxThinkingDelay))
	if err := s.wait(ctx, thinking); err != nil {
		return err
	}
	if err := s.wait(ctx, processingDelay); err != nil {
		return err
	}

	res, err := s.Resolve(ctx, query)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"kind": res.Kind, "length": len(res.Text)}).Debug("streaming answer")

	words := strings.Split(res.Text, " ")
	var current strings.Builder
	current.Grow(len(res.Text))
	for i, word := range words {
		if i > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
		if err := emit(current.String()); err != nil {
			return err
		}
		if err := s.wait(ctx, s.wordDelay(word)); err != nil {
			return err
		}
	}
	return nil
}

// wordDelay adds jitter to the pause after word and enforces the minimum.
func (s *Simulator) wordDelay(word string) time.Duration {
	jitter := time.Duration(s.random()*float64(2*pauseJitter)) - pauseJitter
	return max(minPause, pauseAfter(word)+jitter)
}

// pauseAfter is the pause after word before jitter: longest after sentences,
// then clauses, emphasis markers and long words.
func pauseAfter(word string) time.Duration {
	switch {
	case strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?"):
		return sentencePause
	case strings.HasSuffix(word, ",") || strings.HasSuffix(word, ":") || strings.HasSuffix(word, ";"):
		return clausePause
	case strings.HasPrefix(word, "**") || strings.HasSuffix(word, "**"):
		return emphasisPause
	case utf8.RuneCountInString(word) > longWordRunes:
		return longWordPause
	default:
		return basePause
	}
}

func (s *Simulator) wait(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * s.pace)
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
