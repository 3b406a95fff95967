package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// cacheEntry holds a cached response with its expiration time.
type cacheEntry struct {
	expiresAt time.Time
	proposal  *ProposalResponse
	audit     *AuditResponse
}

// responseCache is a TTL cache for model responses keyed by prompt hash.
// Re-running an optimization or audit over an unchanged pricelist within
// the TTL window returns the cached response without spending tokens.
type responseCache struct {
	entries map[string]cacheEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// newResponseCache creates a cache with the given TTL.
func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}

	c := &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// cacheKey derives a stable key from a prompt.
func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// getProposal returns a cached proposal if present and not expired.
func (c *responseCache) getProposal(key string) (ProposalResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.proposal == nil || time.Now().After(entry.expiresAt) {
		return ProposalResponse{}, false
	}
	return *entry.proposal, true
}

// putProposal stores a proposal response.
func (c *responseCache) putProposal(key string, resp ProposalResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		proposal:  &resp,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// getAudit returns a cached audit if present and not expired.
func (c *responseCache) getAudit(key string) (AuditResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.audit == nil || time.Now().After(entry.expiresAt) {
		return AuditResponse{}, false
	}
	return *entry.audit, true
}

// putAudit stores an audit response.
func (c *responseCache) putAudit(key string, resp AuditResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		audit:     &resp,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *responseCache) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (c *responseCache) Close() {
	close(c.stopCh)
}
