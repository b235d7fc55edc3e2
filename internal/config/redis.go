package config

// Redis backs the HTTP response cache for catalog reads.  The client is
// optional: when the server cannot reach Redis at startup the constructor
// returns nil and the cache middleware stays disabled, so the API keeps
// working against MySQL alone.

import (
    "context"
    "crypto/tls"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the environment:
//   REDIS_HOST / REDIS_PORT – server location (combined into host:port)
//   REDIS_ADDR             – host:port shorthand, overridden by host/port when both are set
//   REDIS_PASSWORD         – optional password
//   REDIS_DB               – database number, default 0
//   REDIS_TLS              – "true"/"1" enables TLS
// A nil client is returned when the initial ping fails.
func NewRedisClient() *redis.Client {
    host := os.Getenv("REDIS_HOST")
    port := os.Getenv("REDIS_PORT")
    addr := os.Getenv("REDIS_ADDR")
    if host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    dbNum := 0
    if s := os.Getenv("REDIS_DB"); s != "" {
        if n, err := strconv.Atoi(s); err == nil {
            dbNum = n
        }
    }
    var tlsConf *tls.Config
    if v := os.Getenv("REDIS_TLS"); strings.EqualFold(v, "true") || v == "1" {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        dbNum,
        TLSConfig: tlsConf,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
