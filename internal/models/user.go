package models

import (
	"database/sql"
)

// User represents a row of the users table.
type User struct {
	UserID       int64  `db:"user_id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuditFields

	// Refresh token state; null until the user first logs in.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
