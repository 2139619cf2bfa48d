package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HuggingFace calls a sentence-similarity inference endpoint, e.g. a
// sentence-transformers model on the Inference API.
type HuggingFace struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHuggingFace(url, apiKey string) (*HuggingFace, error) {
	if url == "" {
		return nil, errors.New("huggingface API URL is required")
	}
	return &HuggingFace{url: url, apiKey: apiKey, client: &http.Client{}}, nil
}

type hfRequest struct {
	Inputs hfInputs `json:"inputs"`
}

type hfInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

func (h *HuggingFace) Similarity(ctx context.Context, a, b string) (float64, error) {
	body, err := json.Marshal(hfRequest{Inputs: hfInputs{SourceSentence: a, Sentences: []string{b}}})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call huggingface: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read huggingface response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("huggingface returned status %d: %s", resp.StatusCode, truncate(string(payload), 200))
	}
	return parseHFScore(payload)
}

// parseHFScore accepts either a one-element array or a bare number.
func parseHFScore(payload []byte) (float64, error) {
	var scores []float64
	if err := json.Unmarshal(payload, &scores); err == nil {
		if len(scores) == 0 {
			return 0, errors.New("huggingface returned no scores")
		}
		return scores[0], nil
	}
	var score float64
	if err := json.Unmarshal(payload, &score); err != nil {
		return 0, fmt.Errorf("unexpected huggingface response %q: %w", truncate(string(payload), 200), err)
	}
	return score, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
