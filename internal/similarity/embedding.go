package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Embedder turns two texts into vectors of the same dimension.
type Embedder interface {
	EmbedPair(ctx context.Context, a, b string) ([]float32, []float32, error)
}

// EmbeddingSimilarity scores a pair by the cosine of their embeddings.
type EmbeddingSimilarity struct {
	embedder Embedder
}

func NewEmbeddingSimilarity(embedder Embedder) *EmbeddingSimilarity {
	return &EmbeddingSimilarity{embedder: embedder}
}

func (e *EmbeddingSimilarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	va, vb, err := e.embedder.EmbedPair(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb)
}

func (e *EmbeddingSimilarity) Close() error {
	if c, ok := e.embedder.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, errors.New("zero-length embedding")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
