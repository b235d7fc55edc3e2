package utils // package utils provides token creation and hashing helpers

import (
    "crypto/rand"   // secure randomness for refresh tokens
    "crypto/sha256" // refresh token hashing
    "encoding/hex"  // hex encoding of digests and random bytes
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT together with its expiry.  Access tokens
// are short-lived and travel in the Authorization header.
type AccessToken struct {
    Token string    // serialized JWT
    Exp   time.Time // UTC expiration time
}

// RefreshToken is a long-lived opaque token used to mint new access tokens.
// The raw value goes to the client; the database keeps only its SHA-256 hash.
type RefreshToken struct {
    Raw string    // raw token returned to the client
    Exp time.Time // UTC expiration time
}

// NewAccessToken signs an HS256 JWT carrying the user id as subject, the
// user's role, expiry and issued-at claims.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role,
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a 48-byte random token encoded as hex plus its
// expiry ttlDays from now.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    raw, err := randomHex(48)
    if err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
    }, nil
}

// HashRefreshRaw returns the SHA-256 hex digest of a raw refresh token.
// Storing only the hash keeps leaked database rows from being replayable.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
