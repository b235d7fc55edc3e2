package model

import "time"

// User is an API account able to authenticate against the service.  Users
// are the identity side of the system and are unrelated to property owners.
// Corresponds to the `users` table.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – role name, ADMIN or AGENT.
//  IsActive     – whether the account may log in.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken is a long-lived session token.  Only the SHA-256 hash of the
// token is stored; the raw value goes back to the client once.  Corresponds
// to the `refresh_tokens` table.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the raw token.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – revocation timestamp, nil while the token is live.
//  CreatedAt – creation timestamp.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
