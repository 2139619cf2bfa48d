package similarity

import (
	"context"
	"fmt"
	"strings"

	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/internal/cache"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/rs/zerolog/log"
)

const (
	ProviderNone        = "none"
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
)

// New builds the configured remote provider, wrapped in the cache when a
// store is given. It returns a nil provider when similarity is disabled or
// its credentials are missing; the scorer then grades lexically.
func New(ctx context.Context, cfg config.Similarity, store cache.Store) (grading.RemoteSimilarity, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	var remote grading.RemoteSimilarity
	switch provider {
	case "", ProviderNone:
		log.Info().Msg("Remote similarity disabled, grading text answers lexically")
		return nil, nil
	case ProviderHuggingFace:
		if cfg.HuggingFaceAPIKey == "" {
			log.Warn().Msg("HUGGINGFACE_API_KEY is not set. Falling back to lexical similarity.")
			return nil, nil
		}
		hf, err := NewHuggingFace(cfg.HuggingFaceURL, cfg.HuggingFaceAPIKey)
		if err != nil {
			return nil, err
		}
		remote = hf
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is not set. Falling back to lexical similarity.")
			return nil, nil
		}
		g, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiEmbeddingModel)
		if err != nil {
			return nil, err
		}
		remote = NewEmbeddingSimilarity(g)
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is not set. Falling back to lexical similarity.")
			return nil, nil
		}
		o, err := NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIEmbeddingModel)
		if err != nil {
			return nil, err
		}
		remote = NewEmbeddingSimilarity(o)
	default:
		return nil, fmt.Errorf("unknown similarity provider %q", cfg.Provider)
	}

	log.Info().Str("provider", provider).Bool("cached", store != nil).Msg("Remote similarity enabled")
	if store == nil {
		return remote, nil
	}
	return NewCached(remote, store, provider, cfg.CacheTTL), nil
}
