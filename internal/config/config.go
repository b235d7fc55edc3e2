package config // package config reads runtime settings from the process environment

import (
    "log"     // fatal reporting for misconfiguration
    "os"      // environment variable access
    "strconv" // numeric conversion of env values
)

// Config collects every runtime setting the service needs.  One field per
// environment variable; required values are enforced at load time so a
// misconfigured deployment fails fast instead of at the first request.
type Config struct {
    Env            string // APP_ENV, e.g. "dev" or "prod"
    Port           string // APP_PORT, HTTP listen port
    DBUser         string // DB_USER
    DBPass         string // DB_PASS, may be empty for local setups
    DBHost         string // DB_HOST
    DBPort         string // DB_PORT
    DBName         string // DB_NAME
    JWTSecret      string // JWT_SECRET, HS256 signing key
    AccessTTLMin   int    // ACCESS_TOKEN_TTL_MIN, access token lifetime in minutes
    RefreshTTLDays int    // REFRESH_TOKEN_TTL_DAYS, refresh token lifetime in days
    BcryptCost     int    // BCRYPT_COST, password hashing cost factor
}

// Load builds a Config from the environment.  Missing required variables
// terminate the process with a fatal log line.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),
        Port:           must("APP_PORT"),
        DBUser:         must("DB_USER"),
        DBPass:         os.Getenv("DB_PASS"),
        DBHost:         must("DB_HOST"),
        DBPort:         must("DB_PORT"),
        DBName:         must("DB_NAME"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
        BcryptCost:     mustInt("BCRYPT_COST"),
    }
}

// must returns the value of a required environment variable or exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
