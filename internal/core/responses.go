package core

import (
	"context"
	"fmt"
)

type Source struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
}

type Image struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// EnhancedResponse is a hand-written answer with its citations and image captions.
type EnhancedResponse struct {
	Content string   `json:"content" yaml:"content"`
	Sources []Source `json:"sources" yaml:"sources"`
	Images  []Image  `json:"images" yaml:"images"`
}

type ResolutionKind int

const (
	// ResolutionCurated means the query matched a curated answer exactly.
	ResolutionCurated ResolutionKind = iota
	// ResolutionFallback means the text came from the fallback writer.
	ResolutionFallback
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionCurated:
		return "curated"
	case ResolutionFallback:
		return "fallback"
	default:
		return fmt.Sprintf("ResolutionKind(%d)", int(k))
	}
}

// Resolution is the full answer text for a query and where it came from.
// Curated is set only for ResolutionCurated.
type Resolution struct {
	Kind    ResolutionKind
	Text    string
	Curated *EnhancedResponse
}

// SuggestedQuestions returns the questions that have curated answers.
func SuggestedQuestions() []string {
	out := make([]string, len(suggestedQuestions))
	copy(out, suggestedQuestions)
	return out
}

// Lookup finds the curated answer for query. Matching is exact, including case
// and whitespace.
func Lookup(query string) (EnhancedResponse, bool) {
	resp, ok := curatedResponses[query]
	if !ok {
		return EnhancedResponse{}, false
	}
	resp.Sources = append([]Source(nil), resp.Sources...)
	resp.Images = append([]Image(nil), resp.Images...)
	return resp, true
}

// Resolve returns the curated answer for query or, failing that, the text
// produced by fallback.
func Resolve(ctx context.Context, fallback FallbackWriter, query string) (Resolution, error) {
	if resp, ok := Lookup(query); ok {
		return Resolution{Kind: ResolutionCurated, Text: resp.Content, Curated: &resp}, nil
	}
	text, err := fallback.Answer(ctx, query)
	if err != nil {
		return Resolution{}, &StreamError{Query: query, Err: err}
	}
	return Resolution{Kind: ResolutionFallback, Text: text}, nil
}

// StreamError is returned when no answer text could be produced for a query.
type StreamError struct {
	Query string
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream error [%.40s]: %v", e.Query, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
