package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/property-listing/internal/config"
)

// cachedResponse is the envelope stored in Redis for one catalog read.
// Body is raw bytes so the client receives the exact payload the handler
// produced, byte for byte.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// teeWriter mirrors the response into a bounded buffer on its way to the
// client.  Responses growing past the limit are marked oversized and never
// stored.
type teeWriter struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int
    oversized bool
}

func (w *teeWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *teeWriter) Write(b []byte) (int, error) {
    if !w.oversized {
        if w.limit > 0 && w.buf.Len()+len(b) > w.limit {
            w.oversized = true
        } else {
            w.buf.Write(b)
        }
    }
    return w.ResponseWriter.Write(b)
}

// cacheKey derives the Redis key from the matched route and raw query under
// the configured prefix.  The query carries the catalog filters, so each
// distinct filter combination caches separately.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum)
}

// replay writes a stored response back to the client, flagging it as a hit.
func replay(c echo.Context, cr cachedResponse) error {
    h := c.Response().Header()
    for k, vals := range cr.Header {
        if strings.EqualFold(k, "Content-Length") {
            continue
        }
        for _, v := range vals {
            h.Add(k, v)
        }
    }
    h.Set("X-Cache", "HIT")
    c.Response().WriteHeader(cr.Status)
    _, err := c.Response().Write(cr.Body)
    return err
}

// NewRedisCache returns a response cache for the configured read methods.
// When caching is disabled or no Redis client is available it degrades to a
// pass-through, so the catalog always works against MySQL alone.  Only 200
// responses are stored; anything else flows through untouched.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            key := cacheKey(cfg, c)
            if raw, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                var cr cachedResponse
                if json.Unmarshal(raw, &cr) == nil && cr.Status != 0 {
                    return replay(c, cr)
                }
                // A corrupt entry falls through and gets overwritten below.
            }

            tee := &teeWriter{
                ResponseWriter: c.Response().Writer,
                status:         http.StatusOK,
                limit:          cfg.MaxBodyBytes,
            }
            c.Response().Writer = tee
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if tee.status != http.StatusOK || tee.oversized {
                return nil
            }

            cr := cachedResponse{
                Status: tee.status,
                Header: c.Response().Header().Clone(),
                Body:   tee.buf.Bytes(),
            }
            if raw, err := json.Marshal(cr); err == nil {
                // Detached context: the store must not race request teardown.
                _ = rdb.SetEx(context.Background(), key, raw, cfg.TTL).Err()
            }
            return nil
        }
    }
}
