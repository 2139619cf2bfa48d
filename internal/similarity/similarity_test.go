package similarity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuggingFace_Similarity(t *testing.T) {
	var got hfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[0.873]`))
	}))
	t.Cleanup(server.Close)

	hf, err := NewHuggingFace(server.URL, "hf-key")
	require.NoError(t, err)

	score, err := hf.Similarity(context.Background(), "paris", "the city of paris")
	require.NoError(t, err)
	assert.InDelta(t, 0.873, score, 1e-9)
	assert.Equal(t, "paris", got.Inputs.SourceSentence)
	assert.Equal(t, []string{"the city of paris"}, got.Inputs.Sentences)
}

func TestHuggingFace_Responses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr bool
	}{
		{"bare number", http.StatusOK, `0.5`, 0.5, false},
		{"accepted", http.StatusAccepted, `[0.25]`, 0.25, false},
		{"redirect status", http.StatusMultipleChoices, `[0.25]`, 0, true},
		{"empty array", http.StatusOK, `[]`, 0, true},
		{"object", http.StatusOK, `{"error":"loading"}`, 0, true},
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			hf, err := NewHuggingFace(server.URL, "")
			require.NoError(t, err)
			score, err := hf.Similarity(context.Background(), "a", "b")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, score)
		})
	}
}

func TestOpenAI_EmbeddingSimilarity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req["model"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  "text-embedding-3-small",
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float32{1, 1}},
				{"object": "embedding", "index": 0, "embedding": []float32{1, 0}},
			},
			"usage": map[string]any{"prompt_tokens": 4, "total_tokens": 4},
		})
	}))
	t.Cleanup(server.Close)

	o, err := NewOpenAI("test-key", server.URL+"/v1", "")
	require.NoError(t, err)

	score, err := NewEmbeddingSimilarity(o).Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.70710678, score, 1e-6)
}

func TestOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI("", "", "")
	assert.Error(t, err)
}

func TestCosine(t *testing.T) {
	v, err := Cosine([]float32{1, 2, 3}, []float32{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)

	v, err = Cosine([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-9)

	_, err = Cosine([]float32{1}, []float32{1, 2})
	assert.Error(t, err)

	_, err = Cosine([]float32{0, 0}, []float32{1, 2})
	assert.Error(t, err)
}

type memoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newMemoryStore() *memoryStore { return &memoryStore{data: map[string]string{}} }

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", errors.New("connection reset")
	}
	v, ok := m.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("read only replica")
	}
	m.data[key] = value
	return nil
}

func (m *memoryStore) Close() error { return nil }

type countingRemote struct {
	calls int
	score float64
	err   error
}

func (c *countingRemote) Similarity(context.Context, string, string) (float64, error) {
	c.calls++
	return c.score, c.err
}

func TestCached_HitsStoreOnSecondCall(t *testing.T) {
	inner := &countingRemote{score: 0.66}
	c := NewCached(inner, newMemoryStore(), ProviderOpenAI, time.Hour)

	for i := 0; i < 3; i++ {
		v, err := c.Similarity(context.Background(), "photosynthesis", "plants make food")
		require.NoError(t, err)
		assert.Equal(t, 0.66, v)
	}
	assert.Equal(t, 1, inner.calls)

	_, err := c.Similarity(context.Background(), "plants make food", "photosynthesis")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCached_BypassesBrokenStore(t *testing.T) {
	store := newMemoryStore()
	store.failGet, store.failSet = true, true
	inner := &countingRemote{score: 0.4}
	c := NewCached(inner, store, ProviderHuggingFace, time.Hour)

	v, err := c.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)
}

func TestCached_DoesNotStoreErrors(t *testing.T) {
	store := newMemoryStore()
	inner := &countingRemote{err: errors.New("timeout")}
	c := NewCached(inner, store, ProviderGemini, time.Hour)

	_, err := c.Similarity(context.Background(), "a", "b")
	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestCacheKey_SeparatesProviders(t *testing.T) {
	assert.NotEqual(t, cacheKey(ProviderOpenAI, "a", "b"), cacheKey(ProviderGemini, "a", "b"))
	assert.NotEqual(t, cacheKey(ProviderOpenAI, "ab", ""), cacheKey(ProviderOpenAI, "a", "b"))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	remote, err := New(ctx, config.Similarity{Provider: "none"}, nil)
	require.NoError(t, err)
	assert.Nil(t, remote)

	remote, err = New(ctx, config.Similarity{Provider: "openai"}, nil)
	require.NoError(t, err)
	assert.Nil(t, remote)

	remote, err = New(ctx, config.Similarity{Provider: "gemini"}, nil)
	require.NoError(t, err)
	assert.Nil(t, remote)

	remote, err = New(ctx, config.Similarity{Provider: "huggingface", HuggingFaceAPIKey: "k", HuggingFaceURL: "http://localhost"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &HuggingFace{}, remote)

	remote, err = New(ctx, config.Similarity{Provider: "OpenAI", OpenAIAPIKey: "k"}, newMemoryStore())
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, remote)

	_, err = New(ctx, config.Similarity{Provider: "word2vec"}, nil)
	assert.Error(t, err)
}
