package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/property-listing/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
    err := JWTAuth(testSecret)(next)(c)
    require.NoError(t, err)
    return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
    rec, _ := runJWT(t, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestJWTAuthMalformedToken(t *testing.T) {
    rec, _ := runJWT(t, "Bearer not-a-jwt")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("another-secret", 7, "AGENT", 15)
    require.NoError(t, err)

    rec, _ := runJWT(t, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsClaims(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 15)
    require.NoError(t, err)

    rec, c := runJWT(t, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ADMIN", c.Get("role"))
    assert.NotNil(t, c.Get("user_id"))
}

func TestRequireRole(t *testing.T) {
    e := echo.New()
    next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
    mw := RequireRole("ADMIN", "AGENT")(next)

    cases := []struct {
        name string
        role interface{}
        want int
    }{
        {"admin allowed", "ADMIN", http.StatusOK},
        {"agent allowed", "AGENT", http.StatusOK},
        {"unknown role", "VIEWER", http.StatusForbidden},
        {"missing role", nil, http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            rec := httptest.NewRecorder()
            c := e.NewContext(req, rec)
            if tc.role != nil {
                c.Set("role", tc.role)
            }
            require.NoError(t, mw(c))
            assert.Equal(t, tc.want, rec.Code)
        })
    }
}
