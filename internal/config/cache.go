package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// CacheConfig controls the Redis response cache middleware.  Caching is a
// read-side optimization for the catalog listing endpoint; when Enabled is
// false or no Redis client could be created the middleware is a no-op.
type CacheConfig struct {
    Enabled      bool            // master switch, CACHE_ENABLED
    Methods      map[string]bool // HTTP methods eligible for caching
    TTL          time.Duration   // lifetime of a cached response
    Prefix       string          // key namespace in Redis
    MaxBodyBytes int             // responses larger than this are not cached
}

// LoadCacheConfig reads cache settings from the environment, falling back to
// conservative defaults: GET only, 30 second TTL, 1 MiB body cap.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      getenv("CACHE_ENABLED", "true") == "true",
        Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
        TTL:          parseDur(getenv("CACHE_TTL", "30s")),
        Prefix:       getenv("CACHE_PREFIX", "cache"),
        MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Second
    }
    return d
}
