package similarity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini embeds text with a Gemini embedding model.
type Gemini struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &Gemini{client: client, model: client.EmbeddingModel(model)}, nil
}

func (g *Gemini) EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error) {
	batch := g.model.NewBatch().
		AddContent(genai.Text(a)).
		AddContent(genai.Text(b))

	res, err := g.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, nil, fmt.Errorf("gemini embed: %w", err)
	}
	if len(res.Embeddings) != 2 || res.Embeddings[0] == nil || res.Embeddings[1] == nil {
		return nil, nil, fmt.Errorf("gemini returned %d embeddings, want 2", len(res.Embeddings))
	}
	return res.Embeddings[0].Values, res.Embeddings[1].Values, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}
