package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-listing/internal/config"
)

func TestRedisCacheDisabledIsPassThrough(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/Property/GetProperties", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    err := mw(func(c echo.Context) error {
        return c.String(http.StatusOK, "live")
    })(c)
    require.NoError(t, err)

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "live", rec.Body.String())
    // The pass-through never marks responses.
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache"}
    e := echo.New()

    key := func(target string) string {
        req := httptest.NewRequest(http.MethodGet, target, nil)
        c := e.NewContext(req, httptest.NewRecorder())
        c.SetPath("/api/Property/GetProperties")
        return cacheKey(cfg, c)
    }

    a := key("/api/Property/GetProperties?name=Villa")
    b := key("/api/Property/GetProperties?name=Casa")
    assert.NotEqual(t, a, b)
    assert.Equal(t, a, key("/api/Property/GetProperties?name=Villa"))
    assert.Contains(t, a, "cache:")
}

func TestTeeWriterBoundedCapture(t *testing.T) {
    rec := httptest.NewRecorder()
    w := &teeWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

    _, err := w.Write([]byte("12345"))
    require.NoError(t, err)
    _, err = w.Write([]byte("67890"))
    require.NoError(t, err)

    // The client sees everything; the capture gave up once the cap was hit.
    assert.Equal(t, "1234567890", rec.Body.String())
    assert.True(t, w.oversized)
    assert.Equal(t, "12345", w.buf.String())
}

func TestReplayRestoresStoredResponse(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    cr := cachedResponse{
        Status: http.StatusOK,
        Header: http.Header{"Content-Type": {"application/json"}},
        Body:   []byte(`[{"name":"Villa Norte"}]`),
    }
    require.NoError(t, replay(c, cr))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
    assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
    assert.Equal(t, `[{"name":"Villa Norte"}]`, rec.Body.String())
}
