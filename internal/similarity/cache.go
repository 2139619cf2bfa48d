package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/lshigami/testportal/internal/cache"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/rs/zerolog/log"
)

// Cached memoises a remote provider in a key/value store. Store failures
// are logged and the provider is called directly.
type Cached struct {
	inner    grading.RemoteSimilarity
	store    cache.Store
	provider string
	ttl      time.Duration
}

func NewCached(inner grading.RemoteSimilarity, store cache.Store, provider string, ttl time.Duration) *Cached {
	return &Cached{inner: inner, store: store, provider: provider, ttl: ttl}
}

// cacheKey hashes the pair so arbitrary answer text never reaches the key
// space. Inputs arrive already normalised.
func cacheKey(provider, a, b string) string {
	sum := sha256.Sum256([]byte(a + "\x00" + b))
	return "similarity:" + provider + ":" + hex.EncodeToString(sum[:])
}

func (c *Cached) Similarity(ctx context.Context, a, b string) (float64, error) {
	key := cacheKey(c.provider, a, b)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
			return v, nil
		}
		log.Warn().Str("key", key).Str("value", raw).Msg("Ignoring malformed cached similarity")
	case !errors.Is(err, cache.ErrMiss):
		log.Warn().Err(err).Str("provider", c.provider).Msg("Similarity cache read failed")
	}

	v, err := c.inner.Similarity(ctx, a, b)
	if err != nil {
		return 0, err
	}

	if err := c.store.Set(ctx, key, strconv.FormatFloat(v, 'g', -1, 64), c.ttl); err != nil {
		log.Warn().Err(err).Str("provider", c.provider).Msg("Similarity cache write failed")
	}
	return v, nil
}

func (c *Cached) Close() error {
	if closer, ok := c.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
