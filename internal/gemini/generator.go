// Package gemini talks to the generative AI service that supplies price quotes,
// symbol search results and portfolio commentary.
//
// Nothing the model returns is trusted: every response is parsed defensively and
// anything of the wrong shape is dropped.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Prompt is a single request to the text generator.
type Prompt struct {
	System string
	Text   string
	// JSON asks the model to answer with a JSON document.
	JSON bool
	// Grounded lets the model consult web search. Grounded answers carry sources
	// but cannot be constrained to JSON, so JSON is ignored when Grounded is set.
	Grounded bool
}

// Completion is the raw answer to a Prompt.
type Completion struct {
	Text    string
	Sources []model.Source
}

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (Completion, error)
}

// NewGenerator returns a genai backed generator, or Disabled when no API key is configured.
func NewGenerator(ctx context.Context, cfg config.GeminiConfig) (Generator, error) {
	if !cfg.Enabled() {
		return Disabled{}, nil
	}
	return NewGenAIGenerator(ctx, cfg.APIKey, cfg.Model)
}

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a generator for the given API key and model name.
func NewGenAIGenerator(ctx context.Context, apiKey, modelName string) (*GenAIGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GenAIGenerator{client: client, model: modelName}, nil
}

// Generate sends p to the model and returns the concatenated text of the first candidate.
func (g *GenAIGenerator) Generate(ctx context.Context, p Prompt) (Completion, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	switch {
	case p.Grounded:
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	case p.JSON:
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(p.Text), cfg)
	if err != nil {
		return Completion{}, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Completion{}, fmt.Errorf("%w: no candidates", apperrors.ErrMalformedResponse)
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	return Completion{
		Text:    sb.String(),
		Sources: groundingSources(candidate.GroundingMetadata),
	}, nil
}

func groundingSources(md *genai.GroundingMetadata) []model.Source {
	if md == nil {
		return nil
	}
	var sources []model.Source
	seen := make(map[string]bool)
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, model.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

// Disabled is used when no API key is configured. Every call fails fast.
type Disabled struct{}

// Generate always returns apperrors.ErrGeneratorUnavailable.
func (Disabled) Generate(context.Context, Prompt) (Completion, error) {
	return Completion{}, apperrors.ErrGeneratorUnavailable
}
