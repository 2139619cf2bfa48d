package similarity

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI embeds text through an OpenAI-compatible embeddings API. BaseURL
// allows self-hosted or proxy endpoints.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	return &OpenAI{client: openai.NewClientWithConfig(config), model: model}, nil
}

func (o *OpenAI) EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{a, b},
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("openai embed: %w", err)
	}

	vectors := make([][]float32, 2)
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index > 1 {
			return nil, nil, fmt.Errorf("openai returned embedding index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	if vectors[0] == nil || vectors[1] == nil {
		return nil, nil, fmt.Errorf("openai returned %d embeddings, want 2", len(resp.Data))
	}
	return vectors[0], vectors[1], nil
}
