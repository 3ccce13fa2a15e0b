package judge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedJudge memoizes verdicts per (evidence, draft) pair so retried or
// re-run batches do not re-bill identical adjudications. Only successful
// responses are cached; failures always retry the underlying capability.
type CachedJudge struct {
	inner Judge
	cache *gocache.Cache
}

// NewCachedJudge wraps inner with an in-memory TTL cache
func NewCachedJudge(inner Judge, ttl time.Duration) *CachedJudge {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedJudge{
		inner: inner,
		cache: gocache.New(ttl, ttl),
	}
}

// Name returns the underlying provider name
func (c *CachedJudge) Name() string {
	return c.inner.Name()
}

// Judge returns a cached response when the same evidence/draft pair was
// already adjudicated, otherwise delegates to the inner capability.
func (c *CachedJudge) Judge(ctx context.Context, req Request) (*Response, error) {
	key := requestKey("judge", req)
	if hit, found := c.cache.Get(key); found {
		resp := hit.(Response)
		return &resp, nil
	}

	resp, err := c.inner.Judge(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, *resp)
	return resp, nil
}

// AssessTone caches the advisory verdict under a separate key space
func (c *CachedJudge) AssessTone(ctx context.Context, req Request) (Verdict, error) {
	key := requestKey("tone", req)
	if hit, found := c.cache.Get(key); found {
		return hit.(Verdict), nil
	}

	verdict, err := c.inner.AssessTone(ctx, req)
	if err != nil {
		return verdict, err
	}
	c.cache.SetDefault(key, verdict)
	return verdict, nil
}

// requestKey hashes the pair identity. Prior findings are part of the key:
// the same texts with different pre-check results are distinct questions.
func requestKey(kind string, req Request) string {
	h := sha256.New()
	h.Write([]byte(req.EvidenceText))
	h.Write([]byte{0})
	h.Write([]byte(req.DraftTitle))
	h.Write([]byte{0})
	h.Write([]byte(req.DraftText))
	h.Write([]byte{0})
	h.Write([]byte(formatFindings(req.PriorFindings)))
	return "factgate:" + kind + ":" + hex.EncodeToString(h.Sum(nil))
}
