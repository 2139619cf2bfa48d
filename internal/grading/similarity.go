package grading

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Similarity scores a candidate answer against a reference in [0,1].
type Similarity interface {
	Similarity(ctx context.Context, candidate, reference string) float64
}

// RemoteSimilarity is an external semantic similarity service. It receives
// normalised strings and may fail; failures are recovered by the caller.
type RemoteSimilarity interface {
	Similarity(ctx context.Context, candidate, reference string) (float64, error)
}

// DefaultSimilarityTimeout bounds a single remote call.
const DefaultSimilarityTimeout = 5 * time.Second

// Normalize folds case and trims surrounding whitespace.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// LexicalSimilarity is the deterministic local heuristic: exact match,
// then substring containment, then Jaccard over word sets.
func LexicalSimilarity(candidate, reference string) float64 {
	a, b := Normalize(candidate), Normalize(reference)
	if a == b {
		return 1.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		shorter, longer := min(la, lb), max(la, lb)
		return float64(shorter) / float64(longer)
	}

	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1.0
	}
	if len(wa) == 0 || len(wb) == 0 {
		return 0.0
	}
	shared := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			shared++
		}
	}
	union := len(wa) + len(wb) - shared
	return float64(shared) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// LexicalScorer adapts LexicalSimilarity to the Similarity interface.
type LexicalScorer struct{}

func (LexicalScorer) Similarity(_ context.Context, candidate, reference string) float64 {
	return LexicalSimilarity(candidate, reference)
}

// TextSimilarityScorer asks the remote service first and falls back to the
// lexical heuristic when the service is unconfigured, slow, failing or
// returns something that is not a similarity.
type TextSimilarityScorer struct {
	remote  RemoteSimilarity
	timeout time.Duration
}

// NewTextSimilarityScorer builds a scorer. remote may be nil, in which case
// only the lexical path is used.
func NewTextSimilarityScorer(remote RemoteSimilarity, timeout time.Duration) *TextSimilarityScorer {
	if timeout <= 0 {
		timeout = DefaultSimilarityTimeout
	}
	return &TextSimilarityScorer{remote: remote, timeout: timeout}
}

func (s *TextSimilarityScorer) Similarity(ctx context.Context, candidate, reference string) float64 {
	a, b := Normalize(candidate), Normalize(reference)
	if s.remote == nil {
		return LexicalSimilarity(a, b)
	}

	score, err := s.callRemote(ctx, a, b)
	if err != nil {
		log.Warn().Err(err).Msg("Similarity service failed, using lexical fallback")
		return LexicalSimilarity(a, b)
	}
	return score
}

func (s *TextSimilarityScorer) callRemote(ctx context.Context, a, b string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TransientScoringError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.remote.Similarity(callCtx, a, b)
	if err != nil {
		return 0, &TransientScoringError{Err: err}
	}
	score, err = clampSimilarity(raw)
	if err != nil {
		return 0, &TransientScoringError{Err: err}
	}
	return score, nil
}

// clampSimilarity maps a raw service value into [0,1]. Cosine similarity may
// be negative; that is treated as no similarity at all.
func clampSimilarity(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("similarity %v is not a finite number", v)
	}
	return math.Min(1, math.Max(0, v)), nil
}
