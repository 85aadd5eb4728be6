package config

import (
	"time"
)

// CacheConfig defines settings for the response cache middleware.  The
// cache sits in front of the read-heavy GET endpoints (item listings and
// vote tallies).  When Enabled is false or no Redis client is available,
// caching is disabled entirely.
type CacheConfig struct {
	Enabled      bool          // master switch
	TTL          time.Duration // lifetime of cache entries
	Prefix       string        // key namespace in Redis
	MaxBodyBytes int           // responses larger than this are not cached
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 15*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "tlcache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
