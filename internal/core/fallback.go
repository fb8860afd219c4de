package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// FallbackWriter produces answer text for queries with no curated answer.
type FallbackWriter interface {
	Answer(ctx context.Context, query string) (string, error)
}

// TemplateFallback echoes the query inside a fixed explanation of the demo.
type TemplateFallback struct{}

func (TemplateFallback) Answer(ctx context.Context, query string) (string, error) {
	return fmt.Sprintf(`Thanks for your query, your query is - "%s"

I'm a demo AI assistant for the Lumo application. In a production environment, I would be connected to a real AI service like OpenAI GPT, Claude, or a custom AI model to provide intelligent responses to your questions.

Feel free to try one of the suggested questions above for a more detailed response, or continue our conversation with any other questions you might have!`, query), nil
}

const (
	defaultGeminiModelName = "gemini-1.5-flash-latest"

	geminiSystemInstruction = "You are Lumo, a helpful assistant for ERP and business operations questions. " +
		"Answer clearly and concisely. Use short paragraphs and bullet points where they help. " +
		"If you do not know the answer, say so instead of making something up."
)

// GeminiFallback answers uncurated queries with a Gemini model.
type GeminiFallback struct {
	client *genai.Client
	model  string
}

func NewGeminiFallback(ctx context.Context, apiKey string) (*GeminiFallback, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiFallback{client: client, model: defaultGeminiModelName}, nil
}

func (g *GeminiFallback) Close() {
	if g.client != nil {
		if err := g.client.Close(); err != nil {
			log.WithError(err).Warn("error closing GenAI client")
		} else {
			log.Debug("GenAI client closed")
		}
	}
}

func (g *GeminiFallback) Answer(ctx context.Context, query string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(geminiSystemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(query))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		} else {
			log.Debugf("gemini response part was not text: %T", part)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned an empty answer")
	}
	return text.String(), nil
}
